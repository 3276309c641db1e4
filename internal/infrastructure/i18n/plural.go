package i18n

import (
	"log"
	"strings"

	"github.com/leonelquinteros/gotext/plurals"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// pluralSampleMax is the largest count evaluated when pairing msgstr indexes with
// CLDR categories. Every integer category of every CLDR locale shows up below it.
const pluralSampleMax = 1000

// pluralLayout maps a CLDR category ("one", "few", ...) to the msgstr index that
// the catalog's Plural-Forms formula selects for counts in that category.
type pluralLayout map[string]int

// layoutFor evaluates the Plural-Forms formula against the CLDR rules of locale.
// Each category takes the index chosen for the smallest count that falls in it.
// It reports false when the header is missing or either side cannot be resolved.
func layoutFor(locale, pluralForms string) (pluralLayout, bool) {
	expr := pluralExpression(pluralForms)
	if expr == "" || locale == "" {
		return nil, false
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, false
	}
	formula, err := plurals.Compile(expr)
	if err != nil {
		log.Printf("i18n: plural formula %q for %s: %v", expr, locale, err)
		return nil, false
	}

	layout := pluralLayout{}
	for n := 0; n <= pluralSampleMax; n++ {
		category := categoryName(plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0))
		if _, seen := layout[category]; seen {
			continue
		}
		layout[category] = formula.Eval(uint32(n))
	}
	return layout, true
}

// pluralExpression returns the plural= part of a Plural-Forms header.
func pluralExpression(header string) string {
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(part, "=")
		if ok && strings.TrimSpace(key) == "plural" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func categoryName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}
