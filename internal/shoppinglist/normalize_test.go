package shoppinglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unicode fraction with unit",
			input: "⅓ cup olive oil",
			want:  "Olive oil",
		},
		{
			name:  "count with unit keeps trailing qualifier",
			input: "5 cloves garlic, grated or minced",
			want:  "Garlic, grated or minced",
		},
		{
			name:  "unit is case-insensitive",
			input: "2 Tbsp brown sugar",
			want:  "Brown sugar",
		},
		{
			name:  "mixed number, unit and parenthetical",
			input: "1½ lb skirt steak (or cut to fit your grill pan)",
			want:  "Skirt steak",
		},
		{
			name:  "bare count without unit word",
			input: "2 eggs",
			want:  "Eggs",
		},
		{
			name:  "abbreviated cup with period",
			input: "1 c. sugar",
			want:  "Sugar",
		},
		{
			name:  "slash fraction",
			input: "1/2 tsp salt",
			want:  "Salt",
		},
		{
			name:  "decimal quantity",
			input: "1.5 liters water",
			want:  "Water",
		},
		{
			name:  "unit prefix of following word is not stripped",
			input: "2 cupcake liners",
			want:  "Cupcake liners",
		},
		{
			name:  "no quantity at all",
			input: "salt and pepper to taste",
			want:  "Salt and pepper to taste",
		},
		{
			name:  "already capitalized stays put",
			input: "Fresh basil",
			want:  "Fresh basil",
		},
		{
			name:  "parenthetical in the middle",
			input: "1 can (14 oz) crushed tomatoes",
			want:  "Crushed tomatoes",
		},
		{
			name:  "empty input drops",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only drops",
			input: "   ",
			want:  "",
		},
		{
			name:  "quantity-only line survives as itself",
			input: "2",
			want:  "2",
		},
		{
			name:  "only capitalizes the first rune",
			input: "3 slices sharp White Cheddar",
			want:  "Sharp White Cheddar",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	t.Parallel()

	lines := []string{
		"⅓ cup olive oil",
		"5 cloves garlic, grated or minced",
		"1½ lb skirt steak (or cut to fit your grill pan)",
		"2 eggs",
		"salt",
	}
	for _, line := range lines {
		first := Normalize(line)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Normalize(line), "line %q", line)
		}
	}
}

func TestNormalizeCollapsesPhrasings(t *testing.T) {
	t.Parallel()

	// Different quantities of the same ingredient share one canonical name;
	// that collision is the aggregation key working as intended.
	assert.Equal(t, Normalize("1 cup olive oil"), Normalize("2 Tbsp olive oil"))
}
