package i18n

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"potcache/internal/domain"
	"potcache/internal/ports/output"
)

// Ensure Translator implements the output.TranslationTable port.
var _ output.TranslationTable = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer that is filled from
// compiled message files.
type Translator struct {
	mu              sync.RWMutex
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewTranslator builds an empty Translator using the given default locale
// (e.g. "fr"). Unparseable locales fall back to English.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}
}

// Load registers the messages of a compiled file under the file's locale.
// Messages already present with the same ID are replaced.
func (t *Translator) Load(ctx context.Context, file domain.CompiledFile) error {
	tag, err := language.Parse(file.Locale)
	if err != nil {
		return fmt.Errorf("i18n: locale %q: %w", file.Locale, err)
	}
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", file.Path, err)
	}
	table := map[string]message{}
	if err := toml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("i18n: decode %s: %w", file.Path, err)
	}

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	messages := make([]*i18n.Message, 0, len(ids))
	for _, id := range ids {
		messages = append(messages, table[id].toI18n(id))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.bundle.AddMessages(tag, messages...); err != nil {
		return fmt.Errorf("i18n: add messages from %s: %w", file.Path, err)
	}
	return nil
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the untranslated msgid.
func (t *Translator) T(locale, key string, data map[string]any) string {
	return t.localize(locale, key, nil, data)
}

// N renders the plural form of key selected by count.
func (t *Translator) N(locale, key string, count int, data map[string]any) string {
	return t.localize(locale, key, count, data)
}

// Languages returns the locales that have at least one message loaded.
func (t *Translator) Languages() []language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bundle.LanguageTags()
}

func (t *Translator) localize(locale, key string, count any, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	t.mu.RLock()
	defer t.mu.RUnlock()
	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%q, locales=%v): %v", key, languages, err)
		return untranslated(key)
	}
	return msg
}

// untranslated strips the msgctxt prefix from a message ID.
func untranslated(key string) string {
	if i := strings.Index(key, domain.ContextSeparator); i >= 0 {
		return key[i+len(domain.ContextSeparator):]
	}
	return key
}
