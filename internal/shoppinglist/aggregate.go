package shoppinglist

// DayLines carries the raw ingredient lines extracted from one day's recipe,
// in document order.
type DayLines struct {
	Day   string
	Lines []string
}

// Aggregate folds every raw line from a plan's days, in day order, into a
// canonical-name → occurrence-count mapping. Counting is global across the
// plan: two recipes each yielding "Garlic" give a count of 2, even though
// extraction deduplicates repeats within a single recipe.
func Aggregate(days []DayLines) map[string]int {
	counts := make(map[string]int)
	for _, d := range days {
		for _, line := range d.Lines {
			if name := Normalize(line); name != "" {
				counts[name]++
			}
		}
	}
	return counts
}
