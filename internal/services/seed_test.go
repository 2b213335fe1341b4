package services

import (
	"context"
	"sync"
	"testing"
)

func TestSeedPopulatesEmptyState(t *testing.T) {
	ctx := context.Background()
	p, _, repo := newTestPlanner(t)

	if err := Seed(ctx, p); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	s := p.Snapshot()
	if len(s.Categories) != 8 || len(s.Stores) != 4 || len(s.Catalog) != 5 || len(s.Lists) != 1 {
		t.Fatalf("unexpected seed sizes: cats=%d stores=%d catalog=%d lists=%d",
			len(s.Categories), len(s.Stores), len(s.Catalog), len(s.Lists))
	}

	l := s.Lists[0]
	if l.Name != "Mercado inicial" || l.Budget != 200000 {
		t.Fatalf("seed list = %+v", l)
	}
	sum, _ := s.Summary(l.ID)
	// 4500×2 + 3200×6
	if sum.Total != 28200 || sum.Progress != 14 {
		t.Fatalf("seed total=%v progress=%d", sum.Total, sum.Progress)
	}
	for _, g := range sum.ByCategory {
		if !g.Resolved {
			t.Fatalf("seed item with unresolved category: %+v", g)
		}
	}
	for _, c := range s.Catalog {
		if c.EstimatedPrice <= 0 || c.DefaultStoreID == "" || c.DefaultCategoryID == "" {
			t.Fatalf("seed catalog item without price or defaults: %+v", c)
		}
	}
	milk := s.ListItems(l.ID)[1]
	if milk.CatalogItemID != s.Catalog[1].ID || milk.StoreID != s.Stores[1].ID {
		t.Fatalf("seed milk references = %+v", milk)
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.Items) != 2 || len(stored.Categories) != 8 {
		t.Fatalf("seed not persisted: %+v", stored)
	}
}

func TestSeedLeavesExistingCollections(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPlanner(t)
	p.CreateStore(ctx, "Mi tienda", "")
	p.CreateList(ctx, "Mine", 0)

	if err := Seed(ctx, p); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	s := p.Snapshot()
	if len(s.Stores) != 1 || len(s.Lists) != 1 || s.Lists[0].Name != "Mine" {
		t.Fatalf("existing collections overwritten: stores=%+v lists=%+v", s.Stores, s.Lists)
	}
	if len(s.Categories) != 8 || len(s.Catalog) != 5 {
		t.Fatalf("empty collections not seeded")
	}

	again := s
	if err := Seed(ctx, p); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if len(p.Snapshot().Categories) != len(again.Categories) {
		t.Fatalf("seeding twice duplicated data")
	}
}

func TestLoadWithSeedOption(t *testing.T) {
	p, _, _ := newTestPlanner(t, WithSeedOnLoad(true))
	if n := len(p.Lists()); n != 1 {
		t.Fatalf("lists after seeded load = %d", n)
	}
}

func TestSeededCatalogPricesListItems(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPlanner(t)
	if err := Seed(ctx, p); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	l, err := p.CreateList(ctx, "Semana", 0)
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	chicken := p.Catalog()[3]
	it, err := p.AddCatalogItem(ctx, l.ID, chicken.ID, 2)
	if err != nil {
		t.Fatalf("AddCatalogItem: %v", err)
	}
	if it.Subtotal != 36000 || it.StoreID != p.Stores()[3].ID {
		t.Fatalf("item from seeded catalog = %+v", it)
	}
}

func TestSeedConcurrentCallsSeedOnce(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestPlanner(t)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- Seed(ctx, p)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Seed: %v", err)
		}
	}

	s := p.Snapshot()
	if len(s.Categories) != 8 || len(s.Stores) != 4 || len(s.Catalog) != 5 || len(s.Lists) != 1 || len(s.Items) != 2 {
		t.Fatalf("concurrent seeding duplicated data: cats=%d stores=%d catalog=%d lists=%d items=%d",
			len(s.Categories), len(s.Stores), len(s.Catalog), len(s.Lists), len(s.Items))
	}
}
