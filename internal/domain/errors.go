package domain

import (
	"errors"
	"fmt"
)

// Kind tags a compilation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectoryUnavailable
	KindNoTranslationSources
	KindExtraction
	KindGeneration
	KindLedger
)

// Sentinel errors, one per Kind.
var (
	ErrDirectoryUnavailable = errors.New("output directory unavailable")
	ErrNoTranslationSources = errors.New("no translation sources compiled")
	ErrExtraction           = errors.New("translation extraction failed")
	ErrGeneration           = errors.New("translation generation failed")
	ErrLedger               = errors.New("ledger unavailable")
)

func (k Kind) sentinel() error {
	switch k {
	case KindDirectoryUnavailable:
		return ErrDirectoryUnavailable
	case KindNoTranslationSources:
		return ErrNoTranslationSources
	case KindExtraction:
		return ErrExtraction
	case KindGeneration:
		return ErrGeneration
	case KindLedger:
		return ErrLedger
	default:
		return nil
	}
}

func (k Kind) String() string {
	switch k {
	case KindDirectoryUnavailable:
		return "directory_unavailable"
	case KindNoTranslationSources:
		return "no_translation_sources"
	case KindExtraction:
		return "extraction"
	case KindGeneration:
		return "generation"
	case KindLedger:
		return "ledger"
	default:
		return "unknown"
	}
}

// Error is the error returned by a compilation pass.
// Path names the file or directory involved, when there is one.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// NewError builds an *Error of the given kind.
func NewError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := kindMessage(e.Kind)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func kindMessage(k Kind) string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "compilation failed"
}
