// Package gettext reads GNU PO files into catalogs.
package gettext

import (
	"context"
	"fmt"
	"slices"

	"github.com/chai2010/gettext-go/po"

	"potcache/internal/domain"
	"potcache/internal/ports/output"
)

var _ output.Extractor = (*Extractor)(nil)

// Extractor parses PO files. The header, fuzzy and untranslated messages are dropped,
// matching what msgfmt would put in a compiled catalog.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(ctx context.Context, path string) (domain.Catalog, error) {
	file, err := po.LoadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("parse po file %s: %w", path, err)
	}

	catalog := domain.Catalog{
		PluralForms: file.MimeHeader.PluralForms,
		Entries:     make([]domain.Entry, 0, len(file.Messages)),
	}
	for _, m := range file.Messages {
		if m.MsgId == "" || slices.Contains(m.Flags, "fuzzy") {
			continue
		}
		entry := domain.Entry{
			Context:  m.MsgContext,
			ID:       m.MsgId,
			PluralID: m.MsgIdPlural,
		}
		if m.MsgIdPlural != "" {
			entry.Translations = slices.Clone(m.MsgStrPlural)
		} else {
			entry.Translations = []string{m.MsgStr}
		}
		if !translated(entry.Translations) {
			continue
		}
		catalog.Entries = append(catalog.Entries, entry)
	}
	return catalog, nil
}

func translated(forms []string) bool {
	for _, f := range forms {
		if f != "" {
			return true
		}
	}
	return false
}
