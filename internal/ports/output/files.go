package output

import (
	"context"

	"potcache/internal/domain"
)

// SourceScanner lists translation sources. An empty locale means every locale.
type SourceScanner interface {
	Get(ctx context.Context, locale string) ([]domain.SourceFile, error)
}

// CompiledStore lists compiled message files for one locale.
type CompiledStore interface {
	Get(ctx context.Context, locale string) ([]domain.CompiledFile, error)
}
