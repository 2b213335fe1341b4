package schema

import (
	"time"

	"mercado/internal/core"
)

// Encode renders a snapshot in the flat shape, the only shape ever written.
// Derived fields (subtotal, estimatedTotal) are written as caches.
func Encode(s core.Snapshot) Records {
	r := Records{
		Categories: make([]CategoryRecord, 0, len(s.Categories)),
		Stores:     make([]StoreRecord, 0, len(s.Stores)),
		Catalog:    make([]CatalogRecord, 0, len(s.Catalog)),
		Lists:      make([]ListRecord, 0, len(s.Lists)),
		Items:      make([]ItemRecord, 0, len(s.Items)),
	}
	for _, c := range s.Categories {
		r.Categories = append(r.Categories, EncodeCategory(c))
	}
	for _, st := range s.Stores {
		r.Stores = append(r.Stores, EncodeStore(st))
	}
	for _, c := range s.Catalog {
		r.Catalog = append(r.Catalog, EncodeCatalogItem(c))
	}
	for _, l := range s.Lists {
		r.Lists = append(r.Lists, EncodeList(l))
	}
	for _, it := range s.Items {
		r.Items = append(r.Items, EncodeItem(it))
	}
	return r
}

func EncodeCategory(c core.Category) CategoryRecord {
	return CategoryRecord{ID: c.ID, Name: c.Name, Icon: c.Icon}
}

func EncodeStore(st core.Store) StoreRecord {
	return StoreRecord{ID: st.ID, Name: st.Name, Location: st.Location}
}

func EncodeCatalogItem(c core.CatalogItem) CatalogRecord {
	return CatalogRecord{
		ID:                c.ID,
		Name:              c.Name,
		DefaultCategoryID: c.DefaultCategoryID,
		Category:          c.CategoryName,
		DefaultStoreID:    c.DefaultStoreID,
		Unit:              c.Unit,
		EstimatedPrice:    c.EstimatedPrice,
	}
}

// EncodeList writes CreatedAt as UTC RFC 3339 and omits it when unknown.
func EncodeList(l core.ShoppingList) ListRecord {
	rec := ListRecord{
		ID:             l.ID,
		Name:           l.Name,
		Budget:         l.Budget,
		EstimatedTotal: l.EstimatedTotal,
	}
	if !l.CreatedAt.IsZero() {
		rec.CreatedAt = l.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return rec
}

func EncodeItem(it core.ListItem) ItemRecord {
	return ItemRecord{
		ID:             it.ID,
		ListID:         it.ListID,
		ItemID:         it.CatalogItemID,
		Name:           it.Name,
		CategoryID:     it.CategoryID,
		Category:       it.CategoryName,
		StoreID:        it.StoreID,
		Store:          it.StoreName,
		Quantity:       it.Quantity,
		Unit:           it.Unit,
		EstimatedPrice: it.EstimatedPrice,
		Subtotal:       it.Subtotal,
		IsChecked:      it.IsChecked,
	}
}
