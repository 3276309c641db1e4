package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"potcache/internal/domain"
	"potcache/internal/ports/input"
	"potcache/internal/ports/output"
)

var _ input.CompileUseCase = (*Compiler)(nil)

// Staleness selects how the compiler decides an existing compiled file is out of date.
type Staleness int

const (
	// StalenessSource recompiles when the source is newer than the recorded compiled time.
	StalenessSource Staleness = iota
	// StalenessCompiled recompiles when the compiled file itself was touched after it was
	// recorded. The source timestamp is not consulted.
	StalenessCompiled
)

// ParseStaleness maps a config value to a Staleness.
func ParseStaleness(s string) (Staleness, error) {
	switch s {
	case "", "source":
		return StalenessSource, nil
	case "compiled":
		return StalenessCompiled, nil
	default:
		return 0, fmt.Errorf("unknown staleness policy %q", s)
	}
}

func (s Staleness) String() string {
	if s == StalenessCompiled {
		return "compiled"
	}
	return "source"
}

// Compiler turns source files into compiled message files, regenerating only those
// whose compiled counterpart is missing or stale.
type Compiler struct {
	layout    domain.Layout
	store     output.LedgerStore
	locker    output.PassLocker
	extractor output.Extractor
	generator output.Generator
	staleness Staleness
}

func NewCompiler(
	layout domain.Layout,
	store output.LedgerStore,
	locker output.PassLocker,
	extractor output.Extractor,
	generator output.Generator,
	staleness Staleness,
) *Compiler {
	return &Compiler{
		layout:    layout,
		store:     store,
		locker:    locker,
		extractor: extractor,
		generator: generator,
		staleness: staleness,
	}
}

// Compile runs one pass over sources and returns the compiled files in source order.
// Any failure aborts the pass before the ledger is written.
func (c *Compiler) Compile(ctx context.Context, sources []domain.SourceFile) (_ []domain.CompiledFile, err error) {
	if err := ensureDir(c.layout.CompiledRoot()); err != nil {
		return nil, err
	}

	if c.locker != nil {
		unlock, lerr := c.locker.Lock(ctx)
		if lerr != nil {
			return nil, domain.NewError(domain.KindLedger, c.layout.LockPath(), lerr)
		}
		defer func() {
			if uerr := unlock(); uerr != nil && err == nil {
				err = domain.NewError(domain.KindLedger, c.layout.LockPath(), uerr)
			}
		}()
	}

	ledger := NewModifiedLedger(c.store)
	if err := ledger.Load(ctx); err != nil {
		return nil, domain.NewError(domain.KindLedger, "", err)
	}

	compiled := make([]domain.CompiledFile, 0, len(sources))
	regenerated := 0
	for _, src := range sources {
		if src.Locale == "" {
			log.Printf("compiler: skipping %s: not inside a locale directory", src.Path)
			continue
		}
		if err := ensureDir(c.layout.LocaleDir(src.Locale)); err != nil {
			return nil, err
		}

		out := c.layout.CompiledFor(src)
		stale, err := c.needsCompile(ledger, src, out.Path)
		if err != nil {
			return nil, domain.NewError(domain.KindLedger, out.Path, err)
		}
		if stale {
			if err := c.compileOne(ctx, src, out.Path); err != nil {
				return nil, err
			}
			regenerated++
		}

		if err := ledger.Add(out.Path); err != nil {
			return nil, domain.NewError(domain.KindLedger, out.Path, err)
		}
		compiled = append(compiled, out)
	}

	if len(compiled) == 0 {
		return nil, domain.NewError(domain.KindNoTranslationSources, c.layout.SourceRoot(), nil)
	}

	if err := ledger.Put(ctx); err != nil {
		return nil, domain.NewError(domain.KindLedger, "", err)
	}
	log.Printf("compiler: %d translation file(s), %d regenerated", len(compiled), regenerated)
	return compiled, nil
}

func (c *Compiler) needsCompile(ledger *ModifiedLedger, src domain.SourceFile, out string) (bool, error) {
	if _, err := os.Stat(out); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	if c.staleness == StalenessCompiled {
		return ledger.IsModified(out)
	}
	return ledger.IsStale(out, src.ModTime), nil
}

func (c *Compiler) compileOne(ctx context.Context, src domain.SourceFile, out string) error {
	catalog, err := c.extractor.Extract(ctx, src.Path)
	if err != nil {
		return domain.NewError(domain.KindExtraction, src.Path, err)
	}
	catalog.Locale = src.Locale
	if err := c.generator.Generate(ctx, catalog, out); err != nil {
		return domain.NewError(domain.KindGeneration, out, err)
	}
	return nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return domain.NewError(domain.KindDirectoryUnavailable, dir, errors.New("not a directory"))
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewError(domain.KindDirectoryUnavailable, dir, err)
	}
	return nil
}
