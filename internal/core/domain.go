package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Category struct {
		ID   string
		Name string
		Icon string
	}

	Store struct {
		ID       string
		Name     string
		Location string
	}

	// CatalogItem is a reusable template used to pre-fill list items.
	CatalogItem struct {
		ID                string
		Name              string
		DefaultCategoryID string
		CategoryName      string // denormalized name (products schema)
		DefaultStoreID    string
		Unit              string
		EstimatedPrice    float64
	}

	ShoppingList struct {
		ID        string
		Name      string
		CreatedAt time.Time
		Budget    float64 // 0 means no budget tracking
		// EstimatedTotal caches the sum of the list's item subtotals.
		EstimatedTotal float64
	}

	ListItem struct {
		ID             string
		ListID         string
		CatalogItemID  string
		Name           string
		CategoryID     string // reference into the category collection
		CategoryName   string // denormalized name (embedded schema)
		StoreID        string
		StoreName      string
		Quantity       float64
		Unit           string
		EstimatedPrice float64
		Subtotal       float64 // derived, see Recalculate
		IsChecked      bool
	}
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyName = errors.New("empty name")
)

// Recalculate re-establishes the derived subtotal from price and quantity.
func (it *ListItem) Recalculate() {
	it.Subtotal = Subtotal(it.EstimatedPrice, it.Quantity)
}

// CategoryKey returns the grouping key of the item's category: the reference
// when present, otherwise the denormalized name.
func (it ListItem) CategoryKey() string {
	if it.CategoryID != "" {
		return it.CategoryID
	}
	return strings.TrimSpace(it.CategoryName)
}

// StoreKey is the store counterpart of CategoryKey.
func (it ListItem) StoreKey() string {
	if it.StoreID != "" {
		return it.StoreID
	}
	return strings.TrimSpace(it.StoreName)
}

func validName(s string) bool {
	return strings.TrimSpace(s) != ""
}

func (l ShoppingList) Validate() error {
	if !validName(l.Name) {
		return ErrEmptyName
	}
	return nil
}

func (it ListItem) Validate() error {
	if !validName(it.Name) {
		return ErrEmptyName
	}
	if strings.TrimSpace(it.ListID) == "" {
		return errors.New("item without list")
	}
	return nil
}

func (c Category) Validate() error {
	if !validName(c.Name) {
		return ErrEmptyName
	}
	return nil
}

func (s Store) Validate() error {
	if !validName(s.Name) {
		return ErrEmptyName
	}
	return nil
}

func (c CatalogItem) Validate() error {
	if !validName(c.Name) {
		return ErrEmptyName
	}
	return nil
}
