package i18n

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"potcache/internal/domain"
	"potcache/internal/infrastructure/filesystem"
	"potcache/internal/ports/output"
)

var _ output.Generator = (*Generator)(nil)

// Generator writes catalogs as go-i18n TOML message files.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate replaces the file at path. Duplicate message IDs keep the last entry.
// Plural forms are assigned to CLDR categories using the catalog's Plural-Forms
// formula evaluated for its locale.
func (g *Generator) Generate(ctx context.Context, catalog domain.Catalog, path string) error {
	data, err := encodeCatalog(catalog)
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func encodeCatalog(catalog domain.Catalog) ([]byte, error) {
	layout, _ := layoutFor(catalog.Locale, catalog.PluralForms)
	table := make(map[string]message, catalog.Len())
	for _, e := range catalog.Entries {
		if len(e.Translations) == 0 {
			continue
		}
		table[e.Key()] = messageFromEntry(e, layout)
	}
	data, err := toml.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}
