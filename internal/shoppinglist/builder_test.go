package shoppinglist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tacoMarkup = `<h2>Ingredients</h2>
<ul>
	<li>1½ lb skirt steak (or cut to fit your grill pan)</li>
	<li>⅓ cup olive oil</li>
	<li>5 cloves garlic, grated or minced</li>
	<li>8 corn tortillas</li>
</ul>`

const dressingMarkup = `<p><strong>Ingredients</strong></p>
<ol>
	<li>2 Tbsp olive oil</li>
	<li>1 clove garlic, grated or minced</li>
	<li>2 eggs</li>
</ol>`

func testDays() []PlanDay {
	return []PlanDay{
		{Day: "Monday", Markup: tacoMarkup},
		{Day: "Tuesday", Markup: dressingMarkup},
		{Day: "Wednesday"}, // no recipe planned
	}
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(NewMemoryExclusionStore())

	entries, err := b.Build(ctx, "plan-1", testDays())
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "Corn tortillas", Count: 1},
		{Name: "Eggs", Count: 1},
		{Name: "Garlic, grated or minced", Count: 2},
		{Name: "Olive oil", Count: 2},
		{Name: "Skirt steak", Count: 1},
	}, entries)
}

func TestBuilderIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(NewMemoryExclusionStore())

	first, err := b.Build(ctx, "plan-1", testDays())
	require.NoError(t, err)
	second, err := b.Build(ctx, "plan-1", testDays())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Render(first), Render(second))
}

func TestBuilderAppliesExclusions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(NewMemoryExclusionStore())

	require.NoError(t, b.Filter().AddExclusions(ctx, "plan-1", []string{"Olive oil", "Eggs"}))

	entries, err := b.Build(ctx, "plan-1", testDays())
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "Corn tortillas", Count: 1},
		{Name: "Garlic, grated or minced", Count: 2},
		{Name: "Skirt steak", Count: 1},
	}, entries)

	// The same days under a different plan key are unaffected.
	entries, err = b.Build(ctx, "plan-2", testDays())
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestBuilderEmptyPlan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(NewMemoryExclusionStore())

	entries, err := b.Build(ctx, "plan-1", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "", Render(entries))
}

func TestSortOrderIsOrdinal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(NewMemoryExclusionStore())

	days := []PlanDay{{Day: "Monday", Markup: `<h2>Ingredients</h2>
		<ul><li>Garlic</li><li>Corn tortillas</li><li>Olive oil</li></ul>`}}

	entries, err := b.Build(ctx, "plan-1", days)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Corn tortillas", "Garlic", "Olive oil"}, names)
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Flour", FormatEntry(Entry{Name: "Flour", Count: 1}))
	assert.Equal(t, "Olive oil (in 2 recipes)", FormatEntry(Entry{Name: "Olive oil", Count: 2}))
}

func TestRender(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Name: "Corn tortillas", Count: 1},
		{Name: "Olive oil", Count: 2},
	}
	assert.Equal(t, "Corn tortillas\nOlive oil (in 2 recipes)", Render(entries))
}
