// Package storage maps planner snapshots to keyed collections in a blob store.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mercado/internal/blob"
	"mercado/internal/core"
	applog "mercado/internal/log"
	"mercado/internal/schema"
)

const DefaultPrefix = "mercadoplanner_"

// Collection names one persisted collection. The storage key is the
// repository prefix followed by the name.
type Collection string

const (
	Categories Collection = "categories"
	Stores     Collection = "stores"
	Catalog    Collection = "catalog_items"
	Lists      Collection = "shopping_lists"
	Items      Collection = "shopping_list_items"

	// Products is the legacy catalog key. It is read, never written.
	Products Collection = "products"
)

// Writable lists the collections Save may write, in a stable order.
var Writable = []Collection{Categories, Stores, Catalog, Lists, Items}

// Repository loads and saves whole snapshots.
type Repository struct {
	store  blob.Store
	prefix string
	logger *applog.Logger
}

func NewRepository(store blob.Store, prefix string, logger *applog.Logger) *Repository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Repository{store: store, prefix: prefix, logger: logger.WithComponent(applog.ComponentStorage)}
}

// Invalidate drops values the store keeps locally so the next Load reads
// what other processes wrote.
func (r *Repository) Invalidate() {
	if inv, ok := r.store.(blob.Invalidator); ok {
		inv.Invalidate()
	}
}

// Key returns the storage key of a collection.
func (r *Repository) Key(c Collection) string {
	return r.prefix + string(c)
}

// Load reads every collection concurrently and normalizes the result.
// Absent keys are empty collections. A collection that is not valid JSON is
// an error; nothing is silently discarded.
func (r *Repository) Load(ctx context.Context) (core.Snapshot, error) {
	var raw schema.Records
	// each goroutine decodes into its own field
	targets := map[Collection]any{
		Categories: &raw.Categories,
		Stores:     &raw.Stores,
		Catalog:    &raw.Catalog,
		Products:   &raw.Products,
		Lists:      &raw.Lists,
		Items:      &raw.Items,
	}

	g, gctx := errgroup.WithContext(ctx)
	for c, dst := range targets {
		g.Go(func() error {
			data, ok, err := r.store.Get(gctx, r.Key(c))
			if err != nil {
				return fmt.Errorf("load %s: %w", c, err)
			}
			if !ok || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, dst); err != nil {
				return fmt.Errorf("decode %s: %w", c, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.ErrorContext(ctx, "Failed to load collections",
			applog.NewFields().WithOperation(applog.OpLoad).WithError(err).ToSlice()...)
		return core.Snapshot{}, err
	}

	snap := schema.Normalize(raw)
	r.logger.DebugContext(ctx, "Collections loaded",
		"lists", len(snap.Lists),
		"items", len(snap.Items),
		"categories", len(snap.Categories))
	return snap, nil
}

// Save writes the given collections of s in one SetMany call, all writable
// collections when none are given. Lists and items always travel together so
// cached totals never disagree with the items on disk.
func (r *Repository) Save(ctx context.Context, s core.Snapshot, collections ...Collection) error {
	if len(collections) == 0 {
		collections = Writable
	}
	rec := schema.Encode(s)

	want := make(map[Collection]bool, len(collections)+1)
	for _, c := range collections {
		want[c] = true
	}
	if want[Lists] || want[Items] {
		want[Lists], want[Items] = true, true
	}

	values := make(map[string][]byte, len(want))
	for _, c := range Writable {
		if !want[c] {
			continue
		}
		data, err := encodeCollection(rec, c)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c, err)
		}
		values[r.Key(c)] = data
	}

	if err := r.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save collections: %w", err)
	}

	// Once a catalog has been written the legacy key would only shadow
	// deletions, so it goes.
	if want[Catalog] {
		if err := r.store.Delete(ctx, r.Key(Products)); err != nil {
			return fmt.Errorf("drop legacy products: %w", err)
		}
	}

	r.logger.DebugContext(ctx, "Collections saved", applog.FieldKeys, len(values))
	return nil
}

// Clear removes every collection, the legacy key included.
func (r *Repository) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(Writable)+1)
	for _, c := range Writable {
		keys = append(keys, r.Key(c))
	}
	keys = append(keys, r.Key(Products))
	if err := r.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	r.logger.InfoContext(ctx, "All collections cleared", applog.FieldOperation, applog.OpClear)
	return nil
}

func encodeCollection(rec schema.Records, c Collection) ([]byte, error) {
	switch c {
	case Categories:
		return json.Marshal(rec.Categories)
	case Stores:
		return json.Marshal(rec.Stores)
	case Catalog:
		return json.Marshal(rec.Catalog)
	case Lists:
		return json.Marshal(rec.Lists)
	case Items:
		return json.Marshal(rec.Items)
	default:
		return nil, fmt.Errorf("collection %s is not writable", c)
	}
}
