package domain

// SourceFile is a .po file found under the source root during a scan.
type SourceFile struct {
	Path    string // absolute
	Locale  string // directory relative to the source root, "" when at the root
	Name    string // base name without extension
	ModTime int64  // Unix seconds
}

// CompiledFile is a generated message file derived from a SourceFile.
type CompiledFile struct {
	Path   string // absolute
	Locale string
	Name   string
}
