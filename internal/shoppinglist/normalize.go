package shoppinglist

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// unitWords is the fixed measurement vocabulary stripped from ingredient
// lines. Longer forms come before their prefixes so the pattern prefers the
// full word ("cups" over "cup", "cup" over "c.").
var unitWords = []string{
	"cups", "cup", "c.",
	"tablespoons", "tablespoon", "tbsp",
	"teaspoons", "teaspoon", "tsp",
	"pounds", "pound", "lbs", "lb",
	"ounces", "ounce", "oz",
	"grams", "gram", "g",
	"kilograms", "kilogram", "kg",
	"liters", "liter", "l",
	"milliliters", "milliliter", "ml",
	"pinch", "dash",
	"cloves", "clove",
	"slices", "slice",
	"pieces", "piece",
	"cans", "can",
	"packages", "package",
	"whole",
}

// quantityPattern matches a single leading quantity token: a run of digits,
// decimal points, slash-fractions and fraction glyphs, optionally followed
// by one unit word, and always followed by whitespace before the remaining
// text. The unit branch only matches when whitespace follows the unit, so
// "2 grapes" loses just the "2", not a bogus "g" unit.
var quantityPattern = compileQuantityPattern()

func compileQuantityPattern() *regexp.Regexp {
	quoted := make([]string, len(unitWords))
	for i, w := range unitWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	const quantity = `[0-9½¼¾⅓⅔⅛⅜⅝⅞][0-9./½¼¾⅓⅔⅛⅜⅝⅞]*`
	return regexp.MustCompile(`(?i)^` + quantity + `(?:\s*(?:` + strings.Join(quoted, "|") + `)\.?)?\s+`)
}

// parentheticalPattern matches a non-nested "(...)" span.
var parentheticalPattern = regexp.MustCompile(`\([^()]*\)`)

// Normalize reduces one raw ingredient line to its canonical name, the key
// used for aggregation across a plan. It strips a single leading quantity
// token and unit word, removes parenthetical asides, trims surrounding
// whitespace and commas, and capitalizes the first rune. An empty result
// means the line carries no ingredient and should be dropped.
//
// Normalize is a pure function: the same line always yields the same name,
// so "1 cup olive oil" and "2 Tbsp olive oil" both collapse to "Olive oil".
func Normalize(line string) string {
	s := strings.TrimSpace(line)
	s = quantityPattern.ReplaceAllString(s, "")
	s = parentheticalPattern.ReplaceAllString(s, "")
	s = strings.Trim(s, " \t\r\n,")
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
