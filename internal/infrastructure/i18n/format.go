package i18n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"potcache/internal/domain"
)

// message is one table of a compiled TOML file, keyed by CLDR plural category.
type message struct {
	Zero  string `toml:"zero,omitempty"`
	One   string `toml:"one,omitempty"`
	Two   string `toml:"two,omitempty"`
	Few   string `toml:"few,omitempty"`
	Many  string `toml:"many,omitempty"`
	Other string `toml:"other,omitempty"`
}

// pluralSlots maps the number of gettext plural forms to CLDR categories, in msgstr[n]
// order. It is only used when the catalog has no usable Plural-Forms header.
// The last form always lands in "other".
var pluralSlots = map[int][]string{
	1: {"other"},
	2: {"one", "other"},
	3: {"one", "few", "other"},
	4: {"one", "two", "few", "other"},
	5: {"one", "two", "few", "many", "other"},
	6: {"zero", "one", "two", "few", "many", "other"},
}

func messageFromEntry(e domain.Entry, layout pluralLayout) message {
	var m message
	forms := e.Translations
	if !e.IsPlural() {
		m.Other = forms[0]
		return m
	}
	if layout != nil {
		for category, i := range layout {
			if i >= 0 && i < len(forms) {
				m.set(category, forms[i])
			}
		}
		if m.Other == "" {
			m.Other = forms[len(forms)-1]
		}
	} else {
		if len(forms) > 6 {
			forms = append(forms[:5:5], forms[len(forms)-1])
		}
		for i, slot := range pluralSlots[len(forms)] {
			m.set(slot, forms[i])
		}
	}
	if m.Other == "" {
		m.Other = firstNonEmpty(forms)
	}
	return m
}

func (m *message) set(slot, text string) {
	switch slot {
	case "zero":
		m.Zero = text
	case "one":
		m.One = text
	case "two":
		m.Two = text
	case "few":
		m.Few = text
	case "many":
		m.Many = text
	default:
		m.Other = text
	}
}

// Delimiters that cannot occur in PO text, so msgstr values are never parsed as
// Go templates.
const (
	literalLeftDelim  = "\x00<<"
	literalRightDelim = ">>\x00"
)

func (m message) toI18n(id string) *i18n.Message {
	return &i18n.Message{
		ID:         id,
		LeftDelim:  literalLeftDelim,
		RightDelim: literalRightDelim,
		Zero:       m.Zero,
		One:        m.One,
		Two:        m.Two,
		Few:        m.Few,
		Many:       m.Many,
		Other:      m.Other,
	}
}

func firstNonEmpty(forms []string) string {
	for _, f := range forms {
		if f != "" {
			return f
		}
	}
	return ""
}
