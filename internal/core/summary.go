package core

// ListSummary is the derived view of one shopping list.
type ListSummary struct {
	List         ShoppingList
	Total        float64
	Progress     int     // percentage of budget, see BudgetProgress
	Remaining    float64 // budget minus total; negative when over budget
	ItemCount    int
	CheckedCount int
	ByCategory   []GroupTotal
	ByStore      []GroupTotal

	// CategoryBreakdown lists every known category, empty ones included.
	CategoryBreakdown []GroupTotal
}

// Overview aggregates every list in a snapshot.
type Overview struct {
	ListCount  int
	GrandTotal float64
	ByCategory []GroupTotal
	ByStore    []GroupTotal
}

// OverBudget reports whether a tracked budget has been exceeded.
func (s ListSummary) OverBudget() bool {
	return s.List.Budget > 0 && s.Total > s.List.Budget
}

// Summarize computes the summary of list from its items. Items belonging to
// other lists are ignored.
func Summarize(list ShoppingList, items []ListItem, categories []Category, stores []Store) ListSummary {
	own := ItemsOf(items, list.ID)
	total := ListTotal(own)
	checked := 0
	for _, it := range own {
		if it.IsChecked {
			checked++
		}
	}
	return ListSummary{
		List:         list,
		Total:        total,
		Progress:     BudgetProgress(total, list.Budget),
		Remaining:    list.Budget - total,
		ItemCount:    len(own),
		CheckedCount: checked,
		ByCategory:   TotalsByCategory(own, categories),
		ByStore:      TotalsByStore(own, stores),

		CategoryBreakdown: CategoryBreakdown(own, categories),
	}
}

// Summary builds the summary of the list with the given id.
func (s Snapshot) Summary(listID string) (ListSummary, error) {
	list, ok := s.List(listID)
	if !ok {
		return ListSummary{}, ErrNotFound
	}
	return Summarize(list, s.Items, s.Categories, s.Stores), nil
}

// Overview totals all lists. Items whose list no longer exists are left out.
func (s Snapshot) Overview() Overview {
	lists := make(map[string]struct{}, len(s.Lists))
	for _, l := range s.Lists {
		lists[l.ID] = struct{}{}
	}
	owned := make([]ListItem, 0, len(s.Items))
	for _, it := range s.Items {
		if _, ok := lists[it.ListID]; ok {
			owned = append(owned, it)
		}
	}
	return Overview{
		ListCount:  len(s.Lists),
		GrandTotal: ListTotal(owned),
		ByCategory: TotalsByCategory(owned, s.Categories),
		ByStore:    TotalsByStore(owned, s.Stores),
	}
}
