package core

import (
	"slices"
	"strings"
)

// Snapshot is an immutable view of every collection. Mutation methods return
// a new Snapshot and leave the receiver untouched, so callers can keep the
// previous value around (for rollback or comparison).
//
// Every method that touches an item re-derives the item's subtotal and the
// owning list's EstimatedTotal in the returned snapshot.
type Snapshot struct {
	Categories []Category
	Stores     []Store
	Catalog    []CatalogItem
	Lists      []ShoppingList
	Items      []ListItem
}

type (
	ListChanges struct {
		Name   *string
		Budget *float64
	}

	ItemChanges struct {
		Name           *string
		CategoryID     *string
		CategoryName   *string
		StoreID        *string
		StoreName      *string
		Quantity       *float64
		Unit           *string
		EstimatedPrice *float64
		IsChecked      *bool
	}

	StoreChanges struct {
		Name     *string
		Location *string
	}

	CatalogChanges struct {
		Name              *string
		DefaultCategoryID *string
		DefaultStoreID    *string
		Unit              *string
		EstimatedPrice    *float64
	}
)

func (s Snapshot) List(id string) (ShoppingList, bool) {
	i := slices.IndexFunc(s.Lists, func(l ShoppingList) bool { return l.ID == id })
	if i < 0 {
		return ShoppingList{}, false
	}
	return s.Lists[i], true
}

func (s Snapshot) Item(id string) (ListItem, bool) {
	i := slices.IndexFunc(s.Items, func(it ListItem) bool { return it.ID == id })
	if i < 0 {
		return ListItem{}, false
	}
	return s.Items[i], true
}

func (s Snapshot) Category(id string) (Category, bool) {
	i := slices.IndexFunc(s.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return Category{}, false
	}
	return s.Categories[i], true
}

func (s Snapshot) Store(id string) (Store, bool) {
	i := slices.IndexFunc(s.Stores, func(st Store) bool { return st.ID == id })
	if i < 0 {
		return Store{}, false
	}
	return s.Stores[i], true
}

func (s Snapshot) CatalogItem(id string) (CatalogItem, bool) {
	i := slices.IndexFunc(s.Catalog, func(c CatalogItem) bool { return c.ID == id })
	if i < 0 {
		return CatalogItem{}, false
	}
	return s.Catalog[i], true
}

// ListItems returns the items of one list in insertion order.
func (s Snapshot) ListItems(listID string) []ListItem {
	return ItemsOf(s.Items, listID)
}

// retotal recomputes the cached total of one list. Lists and Items must
// already be private copies.
func (s *Snapshot) retotal(listID string) {
	for i := range s.Lists {
		if s.Lists[i].ID == listID {
			s.Lists[i].EstimatedTotal = ListTotal(ItemsOf(s.Items, listID))
			return
		}
	}
}

func sanitizeItem(it ListItem) ListItem {
	it.Name = strings.TrimSpace(it.Name)
	it.Quantity = Quantity(it.Quantity)
	it.EstimatedPrice = Price(it.EstimatedPrice)
	it.Recalculate()
	return it
}

// AddList appends l. It is a no-op when l has no id or no name.
func (s Snapshot) AddList(l ShoppingList) (Snapshot, bool) {
	l.Name = strings.TrimSpace(l.Name)
	if l.ID == "" || l.Validate() != nil {
		return s, false
	}
	if _, exists := s.List(l.ID); exists {
		return s, false
	}
	l.Budget = Budget(l.Budget)
	l.EstimatedTotal = ListTotal(ItemsOf(s.Items, l.ID))
	s.Lists = append(slices.Clone(s.Lists), l)
	return s, true
}

// UpdateList merges ch into the list with the given id.
func (s Snapshot) UpdateList(id string, ch ListChanges) (Snapshot, ShoppingList, bool) {
	i := slices.IndexFunc(s.Lists, func(l ShoppingList) bool { return l.ID == id })
	if i < 0 {
		return s, ShoppingList{}, false
	}
	l := s.Lists[i]
	if ch.Name != nil {
		if !validName(*ch.Name) {
			return s, ShoppingList{}, false
		}
		l.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Budget != nil {
		l.Budget = Budget(*ch.Budget)
	}
	s.Lists = slices.Clone(s.Lists)
	s.Lists[i] = l
	return s, l, true
}

// DeleteList removes a list and cascades to its items.
func (s Snapshot) DeleteList(id string) (Snapshot, bool) {
	if _, ok := s.List(id); !ok {
		return s, false
	}
	s.Lists = slices.DeleteFunc(slices.Clone(s.Lists), func(l ShoppingList) bool { return l.ID == id })
	s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(it ListItem) bool { return it.ListID == id })
	return s, true
}

// AddItem appends it to its list. The list must exist.
func (s Snapshot) AddItem(it ListItem) (Snapshot, ListItem, bool) {
	it = sanitizeItem(it)
	if it.ID == "" || it.Validate() != nil {
		return s, ListItem{}, false
	}
	if _, ok := s.List(it.ListID); !ok {
		return s, ListItem{}, false
	}
	if _, exists := s.Item(it.ID); exists {
		return s, ListItem{}, false
	}
	s.Items = append(slices.Clone(s.Items), it)
	s.Lists = slices.Clone(s.Lists)
	s.retotal(it.ListID)
	return s, it, true
}

// UpdateItem merges ch into the item with the given id.
func (s Snapshot) UpdateItem(id string, ch ItemChanges) (Snapshot, ListItem, bool) {
	i := slices.IndexFunc(s.Items, func(it ListItem) bool { return it.ID == id })
	if i < 0 {
		return s, ListItem{}, false
	}
	it := s.Items[i]
	if ch.Name != nil {
		if !validName(*ch.Name) {
			return s, ListItem{}, false
		}
		it.Name = *ch.Name
	}
	setString(&it.CategoryID, ch.CategoryID)
	setString(&it.CategoryName, ch.CategoryName)
	setString(&it.StoreID, ch.StoreID)
	setString(&it.StoreName, ch.StoreName)
	setString(&it.Unit, ch.Unit)
	if ch.Quantity != nil {
		it.Quantity = *ch.Quantity
	}
	if ch.EstimatedPrice != nil {
		it.EstimatedPrice = *ch.EstimatedPrice
	}
	if ch.IsChecked != nil {
		it.IsChecked = *ch.IsChecked
	}
	it = sanitizeItem(it)

	s.Items = slices.Clone(s.Items)
	s.Items[i] = it
	s.Lists = slices.Clone(s.Lists)
	s.retotal(it.ListID)
	return s, it, true
}

// DeleteItem removes one item and returns it.
func (s Snapshot) DeleteItem(id string) (Snapshot, ListItem, bool) {
	it, ok := s.Item(id)
	if !ok {
		return s, ListItem{}, false
	}
	s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(x ListItem) bool { return x.ID == id })
	s.Lists = slices.Clone(s.Lists)
	s.retotal(it.ListID)
	return s, it, true
}

func (s Snapshot) AddCategory(c Category) (Snapshot, bool) {
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" || c.Validate() != nil {
		return s, false
	}
	if _, exists := s.Category(c.ID); exists {
		return s, false
	}
	s.Categories = append(slices.Clone(s.Categories), c)
	return s, true
}

// RenameCategory is the only change allowed on a category once items
// reference it.
func (s Snapshot) RenameCategory(id, name string) (Snapshot, bool) {
	i := slices.IndexFunc(s.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 || !validName(name) {
		return s, false
	}
	s.Categories = slices.Clone(s.Categories)
	s.Categories[i].Name = strings.TrimSpace(name)
	return s, true
}

// DeleteCategory removes a category. Items keep their reference, which then
// dangles and is reported as unresolved by the grouping functions.
func (s Snapshot) DeleteCategory(id string) (Snapshot, bool) {
	if _, ok := s.Category(id); !ok {
		return s, false
	}
	s.Categories = slices.DeleteFunc(slices.Clone(s.Categories), func(c Category) bool { return c.ID == id })
	return s, true
}

func (s Snapshot) AddStore(st Store) (Snapshot, bool) {
	st.Name = strings.TrimSpace(st.Name)
	if st.ID == "" || st.Validate() != nil {
		return s, false
	}
	if _, exists := s.Store(st.ID); exists {
		return s, false
	}
	s.Stores = append(slices.Clone(s.Stores), st)
	return s, true
}

func (s Snapshot) UpdateStore(id string, ch StoreChanges) (Snapshot, Store, bool) {
	i := slices.IndexFunc(s.Stores, func(st Store) bool { return st.ID == id })
	if i < 0 {
		return s, Store{}, false
	}
	st := s.Stores[i]
	if ch.Name != nil {
		if !validName(*ch.Name) {
			return s, Store{}, false
		}
		st.Name = strings.TrimSpace(*ch.Name)
	}
	setString(&st.Location, ch.Location)
	s.Stores = slices.Clone(s.Stores)
	s.Stores[i] = st
	return s, st, true
}

func (s Snapshot) DeleteStore(id string) (Snapshot, bool) {
	if _, ok := s.Store(id); !ok {
		return s, false
	}
	s.Stores = slices.DeleteFunc(slices.Clone(s.Stores), func(st Store) bool { return st.ID == id })
	return s, true
}

func (s Snapshot) AddCatalogItem(c CatalogItem) (Snapshot, bool) {
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" || c.Validate() != nil {
		return s, false
	}
	if _, exists := s.CatalogItem(c.ID); exists {
		return s, false
	}
	c.EstimatedPrice = Price(c.EstimatedPrice)
	s.Catalog = append(slices.Clone(s.Catalog), c)
	return s, true
}

func (s Snapshot) UpdateCatalogItem(id string, ch CatalogChanges) (Snapshot, CatalogItem, bool) {
	i := slices.IndexFunc(s.Catalog, func(c CatalogItem) bool { return c.ID == id })
	if i < 0 {
		return s, CatalogItem{}, false
	}
	c := s.Catalog[i]
	if ch.Name != nil {
		if !validName(*ch.Name) {
			return s, CatalogItem{}, false
		}
		c.Name = strings.TrimSpace(*ch.Name)
	}
	setString(&c.DefaultCategoryID, ch.DefaultCategoryID)
	setString(&c.DefaultStoreID, ch.DefaultStoreID)
	setString(&c.Unit, ch.Unit)
	if ch.EstimatedPrice != nil {
		c.EstimatedPrice = Price(*ch.EstimatedPrice)
	}
	s.Catalog = slices.Clone(s.Catalog)
	s.Catalog[i] = c
	return s, c, true
}

func (s Snapshot) DeleteCatalogItem(id string) (Snapshot, bool) {
	if _, ok := s.CatalogItem(id); !ok {
		return s, false
	}
	s.Catalog = slices.DeleteFunc(slices.Clone(s.Catalog), func(c CatalogItem) bool { return c.ID == id })
	return s, true
}

// ItemFromCatalog pre-fills a list item from a catalog template.
func ItemFromCatalog(c CatalogItem, listID string, quantity float64) ListItem {
	it := ListItem{
		ListID:         listID,
		CatalogItemID:  c.ID,
		Name:           c.Name,
		CategoryID:     c.DefaultCategoryID,
		CategoryName:   c.CategoryName,
		StoreID:        c.DefaultStoreID,
		Quantity:       quantity,
		Unit:           c.Unit,
		EstimatedPrice: c.EstimatedPrice,
	}
	it.Recalculate()
	return it
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
