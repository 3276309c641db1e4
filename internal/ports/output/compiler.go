package output

import (
	"context"

	"potcache/internal/domain"
)

// Extractor parses one source file into a catalog.
type Extractor interface {
	Extract(ctx context.Context, path string) (domain.Catalog, error)
}

// Generator writes a catalog to a compiled message file at path.
type Generator interface {
	Generate(ctx context.Context, catalog domain.Catalog, path string) error
}
