package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"potcache/internal/domain"
	"potcache/internal/infrastructure/filesystem"
	"potcache/internal/infrastructure/ledgerfile"
)

// spyExtractor counts Extract calls and can fail for chosen paths.
type spyExtractor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (s *spyExtractor) Extract(ctx context.Context, path string) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, path)
	if err := s.fail[path]; err != nil {
		return domain.Catalog{}, err
	}
	return domain.Catalog{Entries: []domain.Entry{
		{ID: "hello", Translations: []string{"hello from " + filepath.Base(path)}},
	}}, nil
}

// spyGenerator writes a placeholder compiled file and records the target path
// and the locale of each catalog.
type spyGenerator struct {
	mu      sync.Mutex
	calls   []string
	locales []string
	fail    error
}

func (s *spyGenerator) Generate(ctx context.Context, catalog domain.Catalog, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, path)
	s.locales = append(s.locales, catalog.Locale)
	if s.fail != nil {
		return s.fail
	}
	return os.WriteFile(path, []byte("[hello]\nother = \"hi\"\n"), 0o644)
}

func (s *spyGenerator) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *spyGenerator) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.locales = nil
}

// recordingTable collects the compiled files handed to Load.
type recordingTable struct {
	loaded []domain.CompiledFile
}

func (r *recordingTable) T(locale, key string, data map[string]any) string { return key }

func (r *recordingTable) Load(ctx context.Context, file domain.CompiledFile) error {
	r.loaded = append(r.loaded, file)
	return nil
}

func (r *recordingTable) paths() []string {
	out := make([]string, 0, len(r.loaded))
	for _, f := range r.loaded {
		out = append(out, f.Path)
	}
	return out
}

type fixture struct {
	layout    domain.Layout
	extractor *spyExtractor
	generator *spyGenerator
	compiler  *Compiler
	preparer  *Preparer
}

func newFixture(t *testing.T, staleness Staleness) *fixture {
	t.Helper()
	layout := domain.NewLayout(t.TempDir())
	f := &fixture{
		layout:    layout,
		extractor: &spyExtractor{fail: map[string]error{}},
		generator: &spyGenerator{},
	}
	f.compiler = NewCompiler(
		layout,
		ledgerfile.NewStore(layout.LedgerPath()),
		filesystem.NewFileLock(layout.LockPath()),
		f.extractor,
		f.generator,
		staleness,
	)
	f.preparer = NewPreparer(
		filesystem.NewSourceScanner(layout),
		filesystem.NewCompiledStore(layout),
		f.compiler,
		"en",
	)
	return f
}

// writeSource creates <root>/lang/<rel> with the given modification time (Unix seconds).
func (f *fixture) writeSource(t *testing.T, rel string, mtime int64) string {
	t.Helper()
	path := filepath.Join(f.layout.SourceRoot(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("msgid \"hello\"\nmsgstr \"hi\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	touch(t, path, time.Unix(mtime, 0))
	return path
}

func (f *fixture) sources(t *testing.T) []domain.SourceFile {
	t.Helper()
	srcs, err := filesystem.NewSourceScanner(f.layout).Get(context.Background(), "")
	if err != nil {
		t.Fatalf("scan sources: %v", err)
	}
	return srcs
}

func (f *fixture) ledger(t *testing.T) map[string]int64 {
	t.Helper()
	entries, err := ledgerfile.NewStore(f.layout.LedgerPath()).Load(context.Background())
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return entries
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
