package schema

import (
	"strings"
	"time"

	"mercado/internal/core"
)

// Normalize turns raw records of either persisted shape into a consistent
// snapshot. It never fails and never drops a record:
//
//   - quantity, estimatedPrice and budget go through the numeric normalizer
//   - every subtotal and list total is recomputed, persisted values are ignored
//   - embedded items are lifted into the flat item collection
//   - dangling category/store references are kept as they are
//
// Normalize is idempotent: Normalize(Encode(Normalize(r))) equals Normalize(r).
func Normalize(r Records) core.Snapshot {
	s := core.Snapshot{
		Categories: make([]core.Category, 0, len(r.Categories)),
		Stores:     make([]core.Store, 0, len(r.Stores)),
		Catalog:    make([]core.CatalogItem, 0, len(r.Catalog)),
		Lists:      make([]core.ShoppingList, 0, len(r.Lists)),
		Items:      make([]core.ListItem, 0, len(r.Items)),
	}

	for _, c := range r.Categories {
		s.Categories = append(s.Categories, core.Category{ID: c.ID, Name: strings.TrimSpace(c.Name), Icon: c.Icon})
	}
	for _, st := range r.Stores {
		s.Stores = append(s.Stores, core.Store{ID: st.ID, Name: strings.TrimSpace(st.Name), Location: st.Location})
	}

	catalog := r.Catalog
	if len(catalog) == 0 {
		catalog = r.Products
	}
	for _, c := range catalog {
		s.Catalog = append(s.Catalog, normalizeCatalog(c))
	}

	seen := make(map[string]struct{}, len(r.Items))
	for _, it := range r.Items {
		s.Items = append(s.Items, normalizeItem(it, ""))
		if it.ID != "" {
			seen[it.ID] = struct{}{}
		}
	}

	for _, l := range r.Lists {
		s.Lists = append(s.Lists, core.ShoppingList{
			ID:        l.ID,
			Name:      strings.TrimSpace(l.Name),
			CreatedAt: parseTime(l.CreatedAt),
			Budget:    core.Budget(l.Budget),
		})
		for _, it := range l.Items {
			if _, dup := seen[it.ID]; dup && it.ID != "" {
				continue
			}
			s.Items = append(s.Items, normalizeItem(it, l.ID))
			if it.ID != "" {
				seen[it.ID] = struct{}{}
			}
		}
	}

	for i := range s.Lists {
		s.Lists[i].EstimatedTotal = core.ListTotal(core.ItemsOf(s.Items, s.Lists[i].ID))
	}
	return s
}

func normalizeCatalog(c CatalogRecord) core.CatalogItem {
	return core.CatalogItem{
		ID:                c.ID,
		Name:              strings.TrimSpace(c.Name),
		DefaultCategoryID: c.DefaultCategoryID,
		CategoryName:      strings.TrimSpace(c.Category),
		DefaultStoreID:    c.DefaultStoreID,
		Unit:              c.Unit,
		EstimatedPrice:    core.Price(c.EstimatedPrice),
	}
}

// normalizeItem converts one item record. owner is the id of the enclosing
// list for embedded items and empty for flat ones.
func normalizeItem(r ItemRecord, owner string) core.ListItem {
	listID := r.ListID
	if owner != "" {
		listID = owner
	}
	it := core.ListItem{
		ID:             r.ID,
		ListID:         listID,
		CatalogItemID:  r.ItemID,
		Name:           strings.TrimSpace(r.Name),
		CategoryID:     r.CategoryID,
		CategoryName:   strings.TrimSpace(r.Category),
		StoreID:        r.StoreID,
		StoreName:      strings.TrimSpace(r.Store),
		Quantity:       core.Quantity(r.Quantity),
		Unit:           r.Unit,
		EstimatedPrice: core.Price(r.EstimatedPrice),
		IsChecked:      core.Flag(r.IsChecked),
	}
	it.Recalculate()
	return it
}

// parseTime accepts RFC 3339 strings and epoch milliseconds. Anything else
// becomes the zero time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}
		}
		return parsed.UTC()
	case float64:
		if t <= 0 {
			return time.Time{}
		}
		return time.UnixMilli(int64(t)).UTC()
	default:
		return time.Time{}
	}
}
