package shoppinglist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterAddAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFilter(NewMemoryExclusionStore())

	names, err := f.GetExclusions(ctx, "plan-1")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, f.AddExclusions(ctx, "plan-1", []string{"Eggs", "Salt"}))
	require.NoError(t, f.AddExclusions(ctx, "plan-1", []string{"Eggs"})) // idempotent union

	names, err = f.GetExclusions(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eggs", "Salt"}, names)

	// Other plans are unaffected.
	names, err = f.GetExclusions(ctx, "plan-2")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFilterRejectsInvalidNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFilter(NewMemoryExclusionStore())

	require.NoError(t, f.AddExclusions(ctx, "plan-1", []string{"Eggs"}))

	tests := []struct {
		name  string
		names []string
	}{
		{name: "empty string", names: []string{""}},
		{name: "blank string", names: []string{"   "}},
		{name: "valid mixed with blank", names: []string{"Salt", ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.AddExclusions(ctx, "plan-1", tc.names)
			assert.ErrorIs(t, err, ErrInvalidExclusion)

			// The prior set must be untouched, even when some names were valid.
			names, err := f.GetExclusions(ctx, "plan-1")
			require.NoError(t, err)
			assert.Equal(t, []string{"Eggs"}, names)
		})
	}
}

func TestFilterAllowsEmptyPayload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFilter(NewMemoryExclusionStore())

	require.NoError(t, f.AddExclusions(ctx, "plan-1", nil))
	names, err := f.GetExclusions(ctx, "plan-1")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFilterApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFilter(NewMemoryExclusionStore())

	require.NoError(t, f.AddExclusions(ctx, "plan-1", []string{"Eggs"}))

	aggregate := map[string]int{"Eggs": 2, "Flour": 1}
	got, err := f.Apply(ctx, aggregate, "plan-1")
	require.NoError(t, err)

	// Exclusion removes the entry entirely, it does not decrement.
	assert.Equal(t, map[string]int{"Flour": 1}, got)

	// The input aggregate is not mutated.
	assert.Equal(t, map[string]int{"Eggs": 2, "Flour": 1}, aggregate)

	// A plan without exclusions passes everything through.
	got, err = f.Apply(ctx, aggregate, "plan-2")
	require.NoError(t, err)
	assert.Equal(t, aggregate, got)
}
