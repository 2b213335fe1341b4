// Package worker exports list summaries to the spreadsheet, driven by
// list-changed events and a periodic full export.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercado/internal/amqp"
	"mercado/internal/core"
	"mercado/internal/sheets"
)

// SnapshotLoader reads the current persisted state.
type SnapshotLoader interface {
	Load(ctx context.Context) (core.Snapshot, error)
}

// ExportWorker reloads state from storage on every event, so it never
// exports a total that disagrees with the persisted items.
type ExportWorker struct {
	loader   SnapshotLoader
	exporter sheets.SummaryExporter

	mu       sync.Mutex
	exported map[string]struct{}
}

func NewExportWorker(loader SnapshotLoader, exporter sheets.SummaryExporter) *ExportWorker {
	return &ExportWorker{
		loader:   loader,
		exporter: exporter,
		exported: map[string]struct{}{},
	}
}

// HandleListChanged processes one list-changed message. A message without a
// list id (category rename, reset) triggers a full export.
func (w *ExportWorker) HandleListChanged(ctx context.Context, msg *amqp.ListChangedMessage) error {
	slog.InfoContext(ctx, "Processing list changed message",
		"list_id", msg.ListID,
		"operation", msg.Operation)

	if msg.ListID == "" {
		return w.ExportAll(ctx)
	}

	snap, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	sum, err := snap.Summary(msg.ListID)
	if errors.Is(err, core.ErrNotFound) {
		return w.remove(ctx, msg.ListID)
	}
	if err != nil {
		return err
	}
	return w.export(ctx, sum)
}

// ExportAll exports every list and clears the rows of lists that no longer
// exist. It keeps going after a failed list and reports all failures.
func (w *ExportWorker) ExportAll(ctx context.Context) error {
	snap, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	var errs []error
	present := make(map[string]struct{}, len(snap.Lists))
	for _, l := range snap.Lists {
		present[l.ID] = struct{}{}
		sum, err := snap.Summary(l.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := w.export(ctx, sum); err != nil {
			errs = append(errs, err)
		}
	}

	for _, id := range w.stale(present) {
		if err := w.remove(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	slog.InfoContext(ctx, "Full export completed",
		"lists", len(snap.Lists),
		"errors", len(errs))
	return errors.Join(errs...)
}

// Run performs a full export every interval until ctx is done.
func (w *ExportWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

func (w *ExportWorker) export(ctx context.Context, sum core.ListSummary) error {
	ref, err := w.exporter.ExportList(ctx, sum)
	if err != nil {
		return fmt.Errorf("export list %s: %w", sum.List.ID, err)
	}
	w.mu.Lock()
	w.exported[sum.List.ID] = struct{}{}
	w.mu.Unlock()

	slog.InfoContext(ctx, "List exported",
		"list_id", sum.List.ID,
		"total", sum.Total,
		"progress", sum.Progress,
		"sheets_ref", ref)
	return nil
}

func (w *ExportWorker) remove(ctx context.Context, listID string) error {
	if err := w.exporter.RemoveList(ctx, listID); err != nil {
		return fmt.Errorf("remove list %s: %w", listID, err)
	}
	w.mu.Lock()
	delete(w.exported, listID)
	w.mu.Unlock()
	slog.InfoContext(ctx, "List removed from export", "list_id", listID)
	return nil
}

func (w *ExportWorker) stale(present map[string]struct{}) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for id := range w.exported {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
