package board

import "sort"

// SortCards returns cards reordered by the board's sort policy:
// incomplete before completed, then cards with a priority before cards
// without, then high < medium < low. Ties keep their input order. The
// input slice is not modified.
func SortCards(cards []Card) []Card {
	out := cloneCards(cards)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if (a.Priority != nil) != (b.Priority != nil) {
			return a.Priority != nil
		}
		if a.Priority != nil && b.Priority != nil {
			return a.Priority.weight() < b.Priority.weight()
		}
		return false
	})
	return out
}
