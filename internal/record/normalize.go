package record

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower is a language-neutral Unicode case folder. strings.ToLower is
// not enough here: item names arrive from many locales and must fold
// consistently regardless of the submitting node's locale.
var lower = cases.Lower(language.Und)

// ItemKey normalizes an item name for matching: surrounding whitespace
// is trimmed and the name is lower-folded. Two items match when their
// keys are equal.
func ItemKey(name string) string {
	return lower.String(strings.TrimSpace(name))
}
