package domain

import "path/filepath"

// File extensions and well-known names of the on-disk layout.
const (
	SourceExt   = ".po"
	CompiledExt = ".toml"
	LedgerName  = "languages.json"
	LockName    = ".languages.lock"
)

// Layout resolves the directories used below an application root:
//
//	<root>/lang/<locale>/*.po
//	<root>/storage/lang/<locale>/*.toml
//	<root>/storage/lang/languages.json
type Layout struct {
	Root string
}

// NewLayout returns a Layout rooted at root, made absolute when possible.
func NewLayout(root string) Layout {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return Layout{Root: root}
}

func (l Layout) SourceRoot() string {
	return filepath.Join(l.Root, "lang")
}

func (l Layout) CompiledRoot() string {
	return filepath.Join(l.Root, "storage", "lang")
}

// LocaleDir is the compiled output directory for one locale.
func (l Layout) LocaleDir(locale string) string {
	return filepath.Join(l.CompiledRoot(), locale)
}

func (l Layout) LedgerPath() string {
	return filepath.Join(l.CompiledRoot(), LedgerName)
}

func (l Layout) LockPath() string {
	return filepath.Join(l.CompiledRoot(), LockName)
}

// CompiledFor returns the compiled counterpart of a source file.
func (l Layout) CompiledFor(src SourceFile) CompiledFile {
	return CompiledFile{
		Path:   filepath.Join(l.LocaleDir(src.Locale), src.Name+CompiledExt),
		Locale: src.Locale,
		Name:   src.Name,
	}
}
