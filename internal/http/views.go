package http

import (
	"mercado/internal/core"
	"mercado/internal/schema"
)

// Entities are rendered in their persisted record shape so API clients and
// stored data agree on field names.

type groupView struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Unassigned bool    `json:"unassigned"`
}

type summaryView struct {
	List         schema.ListRecord `json:"list"`
	Total        float64           `json:"total"`
	Progress     int               `json:"progress"`
	Remaining    float64           `json:"remaining"`
	OverBudget   bool              `json:"overBudget"`
	ItemCount    int               `json:"itemCount"`
	CheckedCount int               `json:"checkedCount"`
	ByCategory   []groupView       `json:"byCategory"`
	ByStore      []groupView       `json:"byStore"`

	CategoryBreakdown []groupView `json:"categoryBreakdown"`
}

type overviewView struct {
	ListCount  int         `json:"listCount"`
	GrandTotal float64     `json:"grandTotal"`
	ByCategory []groupView `json:"byCategory"`
	ByStore    []groupView `json:"byStore"`
}

// mapAll converts in with f, returning an empty (never nil) slice.
func mapAll[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func toGroupView(g core.GroupTotal) groupView {
	return groupView{
		Key:        g.Key,
		Name:       g.Name,
		Total:      g.Total,
		Count:      g.Count,
		Unassigned: !g.Resolved,
	}
}

func toSummaryView(s core.ListSummary) summaryView {
	return summaryView{
		List:         schema.EncodeList(s.List),
		Total:        s.Total,
		Progress:     s.Progress,
		Remaining:    s.Remaining,
		OverBudget:   s.OverBudget(),
		ItemCount:    s.ItemCount,
		CheckedCount: s.CheckedCount,
		ByCategory:   mapAll(s.ByCategory, toGroupView),
		ByStore:      mapAll(s.ByStore, toGroupView),

		CategoryBreakdown: mapAll(s.CategoryBreakdown, toGroupView),
	}
}

func toOverviewView(o core.Overview) overviewView {
	return overviewView{
		ListCount:  o.ListCount,
		GrandTotal: o.GrandTotal,
		ByCategory: mapAll(o.ByCategory, toGroupView),
		ByStore:    mapAll(o.ByStore, toGroupView),
	}
}

// listWithItems embeds the list's items the way the nested persisted shape does.
func listWithItems(l core.ShoppingList, items []core.ListItem) schema.ListRecord {
	rec := schema.EncodeList(l)
	rec.Items = mapAll(items, schema.EncodeItem)
	return rec
}
