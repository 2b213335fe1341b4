package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mercado/internal/core"
)

// Header is the first row of the summary sheet.
var Header = []any{
	"List ID", "List", "Budget", "Total", "Progress %", "Remaining",
	"Items", "Checked", "By category", "By store", "Exported at",
}

// summaryRow renders s as one sheet row matching Header.
func summaryRow(s core.ListSummary, exportedAt time.Time) []any {
	return []any{
		s.List.ID,
		s.List.Name,
		s.List.Budget,
		s.Total,
		s.Progress,
		s.Remaining,
		s.ItemCount,
		s.CheckedCount,
		joinGroups(s.ByCategory),
		joinGroups(s.ByStore),
		exportedAt.UTC().Format(time.RFC3339),
	}
}

// joinGroups flattens group totals into "Name: total; Name: total".
// Unresolved groups show their raw key, empty keys show "-".
func joinGroups(groups []core.GroupTotal) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		label := g.Name
		if label == "" {
			label = g.Key
		}
		if label == "" {
			label = "-"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, strconv.FormatFloat(g.Total, 'f', -1, 64)))
	}
	return strings.Join(parts, "; ")
}

// findRow returns the 1-based sheet row whose first cell equals listID, or 0.
// values is the content of column A starting at row 1.
func findRow(values [][]any, listID string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == listID {
			return i + 1
		}
	}
	return 0
}

func blankRow(n int) []any {
	row := make([]any, n)
	for i := range row {
		row[i] = ""
	}
	return row
}

// lastColumn returns the spreadsheet column letter for a 1-based index (<= 26).
func lastColumn(n int) string {
	return string(rune('A' + n - 1))
}
