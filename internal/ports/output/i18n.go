package output

import (
	"context"

	"potcache/internal/domain"
)

// T exposes a minimal i18n contract for user-facing messages.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}

// TranslationTable receives compiled message files.
// Messages from a later Load replace earlier ones with the same ID.
type TranslationTable interface {
	T
	Load(ctx context.Context, file domain.CompiledFile) error
}
