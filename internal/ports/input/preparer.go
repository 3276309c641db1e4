package input

import (
	"context"

	"potcache/internal/domain"
	"potcache/internal/ports/output"
)

type TranslationUseCase interface {
	Prepare(ctx context.Context, table output.TranslationTable) error
	Load(ctx context.Context, locale string, table output.TranslationTable) error
}

type CompileUseCase interface {
	Compile(ctx context.Context, sources []domain.SourceFile) ([]domain.CompiledFile, error)
}
