package services

import (
	"context"
	"fmt"

	"mercado/internal/core"
	applog "mercado/internal/log"
)

type seedRow struct {
	name, category, store, unit string
	price                       float64
}

var (
	seedCategories = []string{
		"Verduras",
		"Frutas",
		"Carnes",
		"Lácteos",
		"Abarrotes",
		"Aseo hogar",
		"Aseo personal",
		"Otros",
	}

	seedStores = []string{"D1", "Éxito", "Ara", "Plaza de mercado"}

	seedCatalog = []seedRow{
		{"Arroz 1kg", "Abarrotes", "D1", "kg", 4500},
		{"Leche entera 1L", "Lácteos", "Éxito", "L", 3200},
		{"Huevos docena", "Otros", "Ara", "docena", 14000},
		{"Pechuga de pollo", "Carnes", "Plaza de mercado", "kg", 18000},
		{"Papel higiénico 4 und", "Aseo hogar", "D1", "paq.", 9800},
	}

	// seedListItems reference seedCatalog rows by name.
	seedListItems = []struct {
		catalog  string
		quantity float64
	}{
		{"Arroz 1kg", 2},
		{"Leche entera 1L", 6},
	}
)

const (
	seedListName   = "Mercado inicial"
	seedListBudget = 200000
)

// Seed fills every empty collection with starter data through the planner's
// own create operations. Collections that already hold records are left alone,
// so seeding is safe to run on every start. Concurrent calls are serialized.
func Seed(ctx context.Context, p *Planner) error {
	p.seedMu.Lock()
	defer p.seedMu.Unlock()

	snap := p.Snapshot()
	seeded := false

	if len(snap.Categories) == 0 {
		for _, name := range seedCategories {
			if _, err := p.CreateCategory(ctx, name, ""); err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
		seeded = true
	}

	if len(snap.Stores) == 0 {
		for _, name := range seedStores {
			if _, err := p.CreateStore(ctx, name, ""); err != nil {
				return fmt.Errorf("seed stores: %w", err)
			}
		}
		seeded = true
	}

	if len(snap.Catalog) == 0 {
		for _, c := range seedCatalog {
			item := core.CatalogItem{
				Name:              c.name,
				DefaultCategoryID: categoryID(p.Categories(), c.category),
				DefaultStoreID:    storeID(p.Stores(), c.store),
				Unit:              c.unit,
				EstimatedPrice:    c.price,
			}
			if _, err := p.CreateCatalogItem(ctx, item); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
		}
		seeded = true
	}

	if len(snap.Lists) == 0 {
		if err := seedList(ctx, p); err != nil {
			return fmt.Errorf("seed list: %w", err)
		}
		seeded = true
	}

	if seeded {
		p.logger.InfoContext(ctx, "Starter data seeded", applog.FieldOperation, applog.OpSeed)
	}
	return nil
}

func seedList(ctx context.Context, p *Planner) error {
	list, err := p.CreateList(ctx, seedListName, seedListBudget)
	if err != nil {
		return err
	}

	catalog, stores, categories := p.Catalog(), p.Stores(), p.Categories()
	for _, want := range seedListItems {
		var it core.ListItem
		if c, ok := catalogItem(catalog, want.catalog); ok {
			it = core.ItemFromCatalog(c, list.ID, want.quantity)
		} else {
			// the catalog was not ours to seed; fall back to the starter row
			row := starterRow(want.catalog)
			it = core.ListItem{
				ListID:         list.ID,
				Name:           row.name,
				CategoryID:     categoryID(categories, row.category),
				StoreID:        storeID(stores, row.store),
				Quantity:       want.quantity,
				Unit:           row.unit,
				EstimatedPrice: row.price,
			}
		}
		if _, err := p.AddItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func catalogItem(catalog []core.CatalogItem, name string) (core.CatalogItem, bool) {
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return core.CatalogItem{}, false
}

func starterRow(name string) seedRow {
	for _, r := range seedCatalog {
		if r.name == name {
			return r
		}
	}
	return seedRow{name: name}
}

func storeID(stores []core.Store, name string) string {
	for _, s := range stores {
		if s.Name == name {
			return s.ID
		}
	}
	return ""
}

func categoryID(categories []core.Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	return ""
}
