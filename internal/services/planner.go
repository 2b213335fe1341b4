// Package services holds the Planner, the application-state owner sitting
// between the presentation layer and storage.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercado/internal/amqp"
	"mercado/internal/core"
	applog "mercado/internal/log"
	"mercado/internal/storage"
)

// ErrPersist wraps every storage failure surfaced by a Planner mutation. The
// in-memory state is kept unless rollback was requested.
var ErrPersist = errors.New("persist state")

// Repository is the persistence port of the Planner.
type Repository interface {
	Load(ctx context.Context) (core.Snapshot, error)
	Save(ctx context.Context, s core.Snapshot, collections ...storage.Collection) error
	Clear(ctx context.Context) error
}

// EventPublisher is notified after every successful write.
type EventPublisher interface {
	PublishListChanged(ctx context.Context, listID, operation string) error
}

type Option func(*Planner)

// WithIDFunc replaces the uuid id source.
func WithIDFunc(f func() string) Option {
	return func(p *Planner) { p.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

func WithPublisher(pub EventPublisher) Option {
	return func(p *Planner) { p.publisher = pub }
}

func WithLogger(l *applog.Logger) Option {
	return func(p *Planner) { p.logger = l.WithComponent(applog.ComponentPlanner) }
}

// WithRollbackOnPersistFailure restores the previous state when a write fails.
func WithRollbackOnPersistFailure(enabled bool) Option {
	return func(p *Planner) { p.rollback = enabled }
}

// WithSeedOnLoad seeds empty collections after every Load.
func WithSeedOnLoad(enabled bool) Option {
	return func(p *Planner) { p.seedOnLoad = enabled }
}

// Planner owns the current snapshot. Mutations are serialized: each one
// computes the next snapshot, installs it, then persists the touched
// collections before the next mutation starts.
//
// Missing required input (blank names, unknown ids, unknown list) is a
// no-op reported as a zero value with a nil error. Only persistence failures
// are errors.
type Planner struct {
	mu   sync.Mutex
	snap core.Snapshot

	// seedMu serializes Seed, which spans several mutations.
	seedMu sync.Mutex

	repo       Repository
	publisher  EventPublisher
	logger     *applog.Logger
	newID      func() string
	now        func() time.Time
	rollback   bool
	seedOnLoad bool
}

func NewPlanner(repo Repository, opts ...Option) *Planner {
	p := &Planner{
		repo:   repo,
		logger: applog.Discard(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the in-memory state with what storage holds.
func (p *Planner) Load(ctx context.Context) error {
	snap, err := p.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "State loaded",
		applog.FieldOperation, applog.OpLoad,
		"lists", len(snap.Lists),
		"items", len(snap.Items))

	if p.seedOnLoad {
		return Seed(ctx, p)
	}
	return nil
}

// Refresh drops storage-side caches and reloads. It picks up changes made
// by other processes sharing the store.
func (p *Planner) Refresh(ctx context.Context) error {
	if inv, ok := p.repo.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
	return p.Load(ctx)
}

// Snapshot returns the current state. The value is never mutated afterwards.
func (p *Planner) Snapshot() core.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// commit installs next and persists the given collections. Callers hold mu.
func (p *Planner) commit(ctx context.Context, next core.Snapshot, listID, op string, cols ...storage.Collection) error {
	prev := p.snap
	p.snap = next

	if err := p.repo.Save(ctx, next, cols...); err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpSave).
			WithError(err)
		if p.rollback {
			p.snap = prev
			fields["rolled_back"] = true
		}
		p.logger.ErrorContext(ctx, "Failed to persist state", fields.ToSlice()...)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if p.publisher != nil && op != "" {
		if err := p.publisher.PublishListChanged(ctx, listID, op); err != nil {
			p.logger.WarnContext(ctx, "Failed to publish list change",
				applog.FieldListID, listID,
				applog.FieldOperation, op,
				applog.FieldError, err)
		}
	}
	return nil
}

func (p *Planner) Lists() []core.ShoppingList {
	return p.Snapshot().Lists
}

func (p *Planner) Items(listID string) []core.ListItem {
	return p.Snapshot().ListItems(listID)
}

func (p *Planner) Categories() []core.Category {
	return p.Snapshot().Categories
}

func (p *Planner) Stores() []core.Store {
	return p.Snapshot().Stores
}

func (p *Planner) Catalog() []core.CatalogItem {
	return p.Snapshot().Catalog
}

// Summary returns the derived view of one list.
func (p *Planner) Summary(listID string) (core.ListSummary, error) {
	return p.Snapshot().Summary(listID)
}

func (p *Planner) Overview() core.Overview {
	return p.Snapshot().Overview()
}

// CreateList appends a new list stamped with the current time.
func (p *Planner) CreateList(ctx context.Context, name string, budget float64) (core.ShoppingList, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l := core.ShoppingList{
		ID:        p.newID(),
		Name:      name,
		CreatedAt: p.now().UTC(),
		Budget:    budget,
	}
	next, ok := p.snap.AddList(l)
	if !ok {
		return core.ShoppingList{}, nil
	}
	l, _ = next.List(l.ID)
	if err := p.commit(ctx, next, l.ID, amqp.OpListCreated, storage.Lists); err != nil {
		return l, err
	}
	p.logger.InfoContext(ctx, "List created",
		applog.NewFields().WithOperation(applog.OpCreate).WithList(l.ID, l.Name, l.EstimatedTotal, l.Budget).ToSlice()...)
	return l, nil
}

func (p *Planner) UpdateList(ctx context.Context, id string, ch core.ListChanges) (core.ShoppingList, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, l, ok := p.snap.UpdateList(id, ch)
	if !ok {
		return core.ShoppingList{}, nil
	}
	return l, p.commit(ctx, next, l.ID, amqp.OpListUpdated, storage.Lists)
}

// DeleteList removes a list and its items. It reports whether anything was removed.
func (p *Planner) DeleteList(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.snap.DeleteList(id)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, id, amqp.OpListDeleted, storage.Lists, storage.Items)
}

// AddItem appends it to its list, assigning a fresh id.
func (p *Planner) AddItem(ctx context.Context, it core.ListItem) (core.ListItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	it.ID = p.newID()
	return p.addItemLocked(ctx, it)
}

// AddCatalogItem adds a list item pre-filled from a catalog template.
func (p *Planner) AddCatalogItem(ctx context.Context, listID, catalogID string, quantity float64) (core.ListItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.snap.CatalogItem(catalogID)
	if !ok {
		return core.ListItem{}, nil
	}
	it := core.ItemFromCatalog(c, listID, quantity)
	it.ID = p.newID()
	return p.addItemLocked(ctx, it)
}

func (p *Planner) addItemLocked(ctx context.Context, it core.ListItem) (core.ListItem, error) {
	next, added, ok := p.snap.AddItem(it)
	if !ok {
		return core.ListItem{}, nil
	}
	if err := p.commit(ctx, next, added.ListID, amqp.OpItemsChanged, storage.Items); err != nil {
		return added, err
	}
	p.logger.DebugContext(ctx, "Item added",
		applog.FieldListID, added.ListID,
		applog.FieldItemID, added.ID,
		"subtotal", added.Subtotal)
	return added, nil
}

func (p *Planner) UpdateItem(ctx context.Context, id string, ch core.ItemChanges) (core.ListItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, it, ok := p.snap.UpdateItem(id, ch)
	if !ok {
		return core.ListItem{}, nil
	}
	return it, p.commit(ctx, next, it.ListID, amqp.OpItemsChanged, storage.Items)
}

// ToggleItem flips the checked flag of an item.
func (p *Planner) ToggleItem(ctx context.Context, id string) (core.ListItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur, ok := p.snap.Item(id)
	if !ok {
		return core.ListItem{}, nil
	}
	checked := !cur.IsChecked
	next, it, _ := p.snap.UpdateItem(id, core.ItemChanges{IsChecked: &checked})
	return it, p.commit(ctx, next, it.ListID, amqp.OpItemsChanged, storage.Items)
}

func (p *Planner) DeleteItem(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, it, ok := p.snap.DeleteItem(id)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, it.ListID, amqp.OpItemsChanged, storage.Items)
}

func (p *Planner) CreateCategory(ctx context.Context, name, icon string) (core.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := core.Category{ID: p.newID(), Name: strings.TrimSpace(name), Icon: icon}
	next, ok := p.snap.AddCategory(c)
	if !ok {
		return core.Category{}, nil
	}
	return c, p.commit(ctx, next, "", "", storage.Categories)
}

// RenameCategory renames a category; every summary grouping by it changes,
// so consumers are told that all lists changed.
func (p *Planner) RenameCategory(ctx context.Context, id, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.snap.RenameCategory(id, name)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, "", amqp.OpListUpdated, storage.Categories)
}

func (p *Planner) DeleteCategory(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.snap.DeleteCategory(id)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, "", amqp.OpListUpdated, storage.Categories)
}

func (p *Planner) CreateStore(ctx context.Context, name, location string) (core.Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := core.Store{ID: p.newID(), Name: strings.TrimSpace(name), Location: strings.TrimSpace(location)}
	next, ok := p.snap.AddStore(st)
	if !ok {
		return core.Store{}, nil
	}
	return st, p.commit(ctx, next, "", "", storage.Stores)
}

func (p *Planner) UpdateStore(ctx context.Context, id string, ch core.StoreChanges) (core.Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, st, ok := p.snap.UpdateStore(id, ch)
	if !ok {
		return core.Store{}, nil
	}
	return st, p.commit(ctx, next, "", amqp.OpListUpdated, storage.Stores)
}

func (p *Planner) DeleteStore(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.snap.DeleteStore(id)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, "", amqp.OpListUpdated, storage.Stores)
}

// CreateCatalogItem appends a catalog template, assigning a fresh id.
func (p *Planner) CreateCatalogItem(ctx context.Context, c core.CatalogItem) (core.CatalogItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c.ID = p.newID()
	next, ok := p.snap.AddCatalogItem(c)
	if !ok {
		return core.CatalogItem{}, nil
	}
	c, _ = next.CatalogItem(c.ID)
	return c, p.commit(ctx, next, "", "", storage.Catalog)
}

func (p *Planner) UpdateCatalogItem(ctx context.Context, id string, ch core.CatalogChanges) (core.CatalogItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, c, ok := p.snap.UpdateCatalogItem(id, ch)
	if !ok {
		return core.CatalogItem{}, nil
	}
	return c, p.commit(ctx, next, "", "", storage.Catalog)
}

func (p *Planner) DeleteCatalogItem(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.snap.DeleteCatalogItem(id)
	if !ok {
		return false, nil
	}
	return true, p.commit(ctx, next, "", "", storage.Catalog)
}

// Reset removes every persisted collection and empties the in-memory state.
func (p *Planner) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.repo.Clear(ctx); err != nil {
		p.logger.ErrorContext(ctx, "Failed to clear state", applog.FieldError, err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	p.snap = core.Snapshot{}
	p.logger.InfoContext(ctx, "State reset", applog.FieldOperation, applog.OpClear)

	if p.publisher != nil {
		if err := p.publisher.PublishListChanged(ctx, "", amqp.OpReset); err != nil {
			p.logger.WarnContext(ctx, "Failed to publish reset", applog.FieldError, err)
		}
	}
	return nil
}
