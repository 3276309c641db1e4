// Package filesystem enumerates translation sources and compiled message files.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"potcache/internal/domain"
	"potcache/internal/ports/output"
)

var (
	_ output.SourceScanner = (*SourceScanner)(nil)
	_ output.CompiledStore = (*CompiledStore)(nil)
)

// SourceScanner lists .po files below <root>/lang.
type SourceScanner struct {
	layout domain.Layout
}

func NewSourceScanner(layout domain.Layout) *SourceScanner {
	return &SourceScanner{layout: layout}
}

// Get walks the source root, or only <root>/lang/<locale> when locale is set.
// A missing directory yields no files.
func (s *SourceScanner) Get(ctx context.Context, locale string) ([]domain.SourceFile, error) {
	root := s.layout.SourceRoot()
	dir := root
	if locale != "" {
		dir = filepath.Join(root, locale)
	}

	var out []domain.SourceFile
	err := walkFiles(ctx, dir, domain.SourceExt, func(path string, info fs.FileInfo) error {
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		out = append(out, domain.SourceFile{
			Path:    path,
			Locale:  filepath.ToSlash(rel),
			Name:    strings.TrimSuffix(filepath.Base(path), domain.SourceExt),
			ModTime: info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// CompiledStore lists compiled message files below <root>/storage/lang/<locale>.
type CompiledStore struct {
	layout domain.Layout
}

func NewCompiledStore(layout domain.Layout) *CompiledStore {
	return &CompiledStore{layout: layout}
}

// Get lists the compiled files directly inside the locale directory. Nested
// directories belong to their own locale ("en/sub") and are not descended into.
func (s *CompiledStore) Get(ctx context.Context, locale string) ([]domain.CompiledFile, error) {
	dir := s.layout.LocaleDir(locale)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []domain.CompiledFile
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != domain.CompiledExt {
			continue
		}
		out = append(out, domain.CompiledFile{
			Path:   filepath.Join(dir, e.Name()),
			Locale: locale,
			Name:   strings.TrimSuffix(e.Name(), domain.CompiledExt),
		})
	}
	return out, nil
}

func walkFiles(ctx context.Context, dir, ext string, fn func(string, fs.FileInfo) error) error {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(path, info)
	})
}
