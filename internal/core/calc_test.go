package core

import "testing"

func TestSubtotal(t *testing.T) {
	cases := []struct {
		price, qty, out float64
	}{
		{4500, 2, 9000},
		{3200, 6, 19200},
		{0.5, 3, 1.5},
		{1.25, 0, 0},
		{-100, 2, 0},
		{-0.01, 1, 0},
		{100, -1, 0},
	}
	for _, tc := range cases {
		if got := Subtotal(tc.price, tc.qty); got != tc.out {
			t.Fatalf("Subtotal(%v, %v) = %v, want %v", tc.price, tc.qty, got, tc.out)
		}
	}
}

func TestSubtotalMatchesProductForNonNegative(t *testing.T) {
	for price := 0.0; price <= 1000; price += 125 {
		for qty := 0.0; qty <= 10; qty += 0.5 {
			if got := Subtotal(price, qty); got != price*qty {
				t.Fatalf("Subtotal(%v, %v) = %v, want %v", price, qty, got, price*qty)
			}
		}
	}
}

func TestListTotalIgnoresStaleSubtotal(t *testing.T) {
	items := []ListItem{
		{EstimatedPrice: 4500, Quantity: 2, Subtotal: 1},
		{EstimatedPrice: 3200, Quantity: 1, Subtotal: 99999},
		{EstimatedPrice: -5, Quantity: 3},
	}
	if got := ListTotal(items); got != 12200 {
		t.Fatalf("ListTotal = %v, want 12200", got)
	}
	if got := ListTotal(nil); got != 0 {
		t.Fatalf("ListTotal(nil) = %v, want 0", got)
	}
}

func TestBudgetProgress(t *testing.T) {
	cases := []struct {
		name          string
		total, budget float64
		out           int
	}{
		{"scenario A rounds 4.5 up", 9000, 200000, 5},
		{"scenario B over budget not clamped to 100", 250000, 200000, 125},
		{"exact budget", 200000, 200000, 100},
		{"no budget", 5000, 0, 0},
		{"negative budget", 5000, -10, 0},
		{"zero total", 0, 1000, 0},
		{"clamped at ceiling", 10000, 1000, ProgressCeiling},
		{"between 100 and ceiling", 1500, 1000, 150},
		{"negative total floors", -50, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BudgetProgress(tc.total, tc.budget); got != tc.out {
				t.Fatalf("BudgetProgress(%v, %v) = %d, want %d", tc.total, tc.budget, got, tc.out)
			}
		})
	}
}

func TestBudgetProgressMonotonic(t *testing.T) {
	const budget = 3000.0
	prev := -1
	for total := 0.0; total <= 10000; total += 37 {
		p := BudgetProgress(total, budget)
		if p < prev {
			t.Fatalf("progress decreased at total=%v: %d < %d", total, p, prev)
		}
		if p > ProgressCeiling || p < 0 {
			t.Fatalf("progress %d out of bounds", p)
		}
		prev = p
	}
	if prev != ProgressCeiling {
		t.Fatalf("expected to reach ceiling, got %d", prev)
	}
}

func TestScenarioAddItemToEmptyList(t *testing.T) {
	item := ListItem{ID: "i1", ListID: "l1", Name: "Rice", EstimatedPrice: 4500, Quantity: 2}
	item.Recalculate()
	if item.Subtotal != 9000 {
		t.Fatalf("subtotal = %v, want 9000", item.Subtotal)
	}

	s, ok := Snapshot{}.AddList(ShoppingList{ID: "l1", Name: "Weekly", Budget: 200000})
	if !ok {
		t.Fatalf("AddList rejected")
	}
	s, _, ok = s.AddItem(item)
	if !ok {
		t.Fatalf("AddItem rejected")
	}
	sum, err := s.Summary("l1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total != 9000 || sum.List.EstimatedTotal != 9000 {
		t.Fatalf("total = %v cached = %v, want 9000", sum.Total, sum.List.EstimatedTotal)
	}
	if sum.Progress != 5 {
		t.Fatalf("progress = %d, want 5", sum.Progress)
	}
	if sum.Remaining != 191000 {
		t.Fatalf("remaining = %v, want 191000", sum.Remaining)
	}
}
