package domain

// ContextSeparator joins msgctxt and msgid into a single message ID, as gettext does.
const ContextSeparator = "\x04"

// Entry is one translated message extracted from a source file.
type Entry struct {
	Context      string
	ID           string
	PluralID     string
	Translations []string // msgstr, or msgstr[0..n] for plural entries
}

// Key returns the message ID the entry is registered under.
func (e Entry) Key() string {
	if e.Context == "" {
		return e.ID
	}
	return e.Context + ContextSeparator + e.ID
}

// IsPlural reports whether the entry carries plural forms.
func (e Entry) IsPlural() bool {
	return e.PluralID != ""
}

// Catalog is the set of entries extracted from one source file, in file order.
type Catalog struct {
	Locale      string
	PluralForms string // raw Plural-Forms header, e.g. "nplurals=2; plural=(n != 1);"
	Entries     []Entry
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.Entries)
}
