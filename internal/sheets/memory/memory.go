package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mercado/internal/core"
)

// Exporter keeps exported summaries in memory, in export order. It stands in
// for the Sheets client when no spreadsheet is configured.
type Exporter struct {
	mu    sync.Mutex
	order []string
	rows  map[string]core.ListSummary
	calls int
}

func New() *Exporter {
	return &Exporter{rows: map[string]core.ListSummary{}}
}

// ExportList stores the summary and returns a synthetic row reference.
func (e *Exporter) ExportList(_ context.Context, s core.ListSummary) (string, error) {
	if s.List.ID == "" {
		return "", errors.New("summary without list id")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if _, ok := e.rows[s.List.ID]; !ok {
		e.order = append(e.order, s.List.ID)
	}
	e.rows[s.List.ID] = s
	return fmt.Sprintf("mem:%d", indexOf(e.order, s.List.ID)+1), nil
}

func (e *Exporter) RemoveList(_ context.Context, listID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.rows[listID]; !ok {
		return nil
	}
	delete(e.rows, listID)
	e.order = append(e.order[:indexOf(e.order, listID)], e.order[indexOf(e.order, listID)+1:]...)
	return nil
}

// Rows returns the exported summaries in first-export order.
func (e *Exporter) Rows() []core.ListSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.ListSummary, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.rows[id])
	}
	return out
}

// Row returns the last summary exported for listID.
func (e *Exporter) Row(listID string) (core.ListSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.rows[listID]
	return s, ok
}

// Calls counts ExportList invocations.
func (e *Exporter) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if v == target {
			return i
		}
	}
	return -1
}
