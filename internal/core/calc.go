package core

import "math"

// ProgressCeiling bounds BudgetProgress so progress bars stay renderable.
// Values between 100 and the ceiling still mean "over budget".
const ProgressCeiling = 200

// Subtotal returns price × quantity floored at zero. Fractional amounts are
// never rounded.
func Subtotal(price, quantity float64) float64 {
	s := price * quantity
	if s < 0 || !finite(s) {
		return 0
	}
	return s
}

// ListTotal sums the subtotals of items, recomputing each one from the
// current price and quantity.
func ListTotal(items []ListItem) float64 {
	var total float64
	for _, it := range items {
		total += Subtotal(it.EstimatedPrice, it.Quantity)
	}
	return total
}

// BudgetProgress returns the percentage of budget consumed by total, rounded
// to the nearest integer and clamped to [0, ProgressCeiling]. A budget that is
// zero, negative or absent disables tracking and yields 0.
func BudgetProgress(total, budget float64) int {
	if budget <= 0 || !finite(budget) || !finite(total) {
		return 0
	}
	pct := math.Round(total * 100 / budget)
	if pct < 0 {
		return 0
	}
	if pct > ProgressCeiling {
		return ProgressCeiling
	}
	return int(pct)
}

// ItemsOf returns the items belonging to listID, preserving order.
func ItemsOf(items []ListItem, listID string) []ListItem {
	out := make([]ListItem, 0)
	for _, it := range items {
		if it.ListID == listID {
			out = append(out, it)
		}
	}
	return out
}
