// Package shoppinglist consolidates the ingredient lines of a meal plan's
// recipes into one deduplicated, ordered shopping list: normalize each line
// to a canonical name, count occurrences across the plan, drop the names the
// user has excluded, and render the rest as text.
package shoppinglist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mealcart/internal/markup"
)

// PlanDay pairs a day label with the recipe markup planned for it. Markup is
// empty when the day has no recipe.
type PlanDay struct {
	Day    string
	Markup string
}

// Entry is one consolidated shopping-list line: a canonical ingredient name
// and the number of recipes it appears in.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Builder orchestrates extraction, aggregation and filtering into the final
// ordered list. It is a pure function of the plan's markups and its current
// exclusion set: identical inputs produce identical output.
type Builder struct {
	filter *Filter
}

// NewBuilder creates a Builder whose exclusion filter reads from the given
// store.
func NewBuilder(store ExclusionStore) *Builder {
	return &Builder{filter: NewFilter(store)}
}

// Filter exposes the builder's exclusion filter for direct use by the
// exclusion endpoints.
func (b *Builder) Filter() *Filter {
	return b.filter
}

// Build produces the shopping list for a plan: extract ingredient lines from
// each day's markup in day order, aggregate counts across the plan, remove
// the plan's excluded names, and sort the rest by name with a plain
// byte-wise comparison so the order is deterministic and locale-independent.
func (b *Builder) Build(ctx context.Context, planID string, days []PlanDay) ([]Entry, error) {
	dayLines := make([]DayLines, 0, len(days))
	for _, d := range days {
		dayLines = append(dayLines, DayLines{Day: d.Day, Lines: markup.ExtractIngredients(d.Markup)})
	}

	counts, err := b.filter.Apply(ctx, Aggregate(dayLines), planID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Count: counts[name]})
	}
	return entries, nil
}

// FormatEntry renders one entry: the bare name, or "name (in N recipes)"
// when it occurs more than once.
func FormatEntry(e Entry) string {
	if e.Count > 1 {
		return fmt.Sprintf("%s (in %d recipes)", e.Name, e.Count)
	}
	return e.Name
}

// Render joins the formatted entries into the newline-separated text blob
// that downstream display and persistence depend on.
func Render(entries []Entry) string {
	formatted := make([]string, 0, len(entries))
	for _, e := range entries {
		formatted = append(formatted, FormatEntry(e))
	}
	return strings.Join(formatted, "\n")
}
