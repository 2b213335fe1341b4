// Package sheets defines the outbound port for exporting list summaries to a
// spreadsheet. Export is one way: nothing is read back into the planner.
package sheets

import (
	"context"

	"mercado/internal/core"
)

type (
	// SummaryExporter writes one row per list, replacing the row previously
	// exported for the same list.
	SummaryExporter interface {
		ExportList(ctx context.Context, s core.ListSummary) (rowRef string, err error)
		// RemoveList clears the row of a deleted list. Unknown lists are ignored.
		RemoveList(ctx context.Context, listID string) error
	}
)
