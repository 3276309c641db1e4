package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"potcache/internal/domain"
	"potcache/internal/ports/input"
	"potcache/internal/ports/output"
)

var _ input.TranslationUseCase = (*Preparer)(nil)

// Preparer compiles every translation source and loads the active locale into a
// translation table.
type Preparer struct {
	sources  output.SourceScanner
	compiled output.CompiledStore
	compiler input.CompileUseCase
	locale   string

	passes singleflight.Group
}

func NewPreparer(
	sources output.SourceScanner,
	compiled output.CompiledStore,
	compiler input.CompileUseCase,
	locale string,
) *Preparer {
	return &Preparer{
		sources:  sources,
		compiled: compiled,
		compiler: compiler,
		locale:   locale,
	}
}

// Prepare compiles the sources of all locales, then loads the compiled files of the
// active locale into table. A project without sources is left untouched.
func (p *Preparer) Prepare(ctx context.Context, table output.TranslationTable) error {
	files, err := p.compileAll(ctx)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.Locale != p.locale {
			continue
		}
		if err := table.Load(ctx, f); err != nil {
			return fmt.Errorf("load %s: %w", f.Path, err)
		}
	}
	return nil
}

// Load adds the already compiled files of locale to table without compiling.
func (p *Preparer) Load(ctx context.Context, locale string, table output.TranslationTable) error {
	files, err := p.compiled.Get(ctx, locale)
	if err != nil {
		return fmt.Errorf("list compiled files for %q: %w", locale, err)
	}
	for _, f := range files {
		if err := table.Load(ctx, f); err != nil {
			return fmt.Errorf("load %s: %w", f.Path, err)
		}
	}
	return nil
}

// compileAll runs one compile pass; concurrent callers share the pass in flight.
// The pass is detached from the caller's cancellation since other callers may be
// waiting on it.
func (p *Preparer) compileAll(ctx context.Context) ([]domain.CompiledFile, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := p.passes.Do("compile", func() (any, error) {
		sources, err := p.sources.Get(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("scan sources: %w", err)
		}
		if len(sources) == 0 {
			return []domain.CompiledFile(nil), nil
		}
		return p.compiler.Compile(ctx, sources)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CompiledFile), nil
}
