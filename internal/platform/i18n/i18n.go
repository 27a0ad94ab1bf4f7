// Package i18n holds the translation catalog used by every user-facing
// string. The catalog is built once at startup and is read-only afterwards,
// so it is passed explicitly to the services that render text.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Language is one of the closed set of supported interface languages.
type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
	Japanese   Language = "jp"
	Korean     Language = "kr"
)

// DefaultLanguage is the fallback for missing keys and unset preferences.
const DefaultLanguage = Indonesian

var ErrUnsupportedLanguage = errors.New("unsupported language")

var languageNames = map[Language]string{
	Indonesian: "Bahasa Indonesia",
	English:    "English (US)",
	Japanese:   "日本語 (Japanese)",
	Korean:     "한국어 (Korean)",
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{Indonesian, English, Japanese, Korean}
}

// ParseLanguage accepts a language code. Surrounding whitespace and case are
// ignored; anything outside the closed set is rejected.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

// Valid reports whether l belongs to the supported set.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Name returns the human-readable language name.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return string(l)
}

// Catalog is an immutable key to string table per language.
type Catalog struct {
	tables   map[Language]map[string]string
	fallback Language
}

// NewCatalog copies tables so later mutation by the caller has no effect.
func NewCatalog(tables map[Language]map[string]string, fallback Language) *Catalog {
	c := &Catalog{
		tables:   make(map[Language]map[string]string, len(tables)),
		fallback: fallback,
	}
	for lang, table := range tables {
		cp := make(map[string]string, len(table))
		for k, v := range table {
			cp[k] = v
		}
		c.tables[lang] = cp
	}
	return c
}

// Default returns the built-in catalog with Indonesian as the fallback.
func Default() *Catalog {
	return NewCatalog(builtin, DefaultLanguage)
}

// T resolves key in lang, then in the fallback language, and finally returns
// the key itself.
func (c *Catalog) T(lang Language, key string) string {
	if table, ok := c.tables[lang]; ok {
		if v, ok := table[key]; ok && v != "" {
			return v
		}
	}
	if v, ok := c.tables[c.fallback][key]; ok && v != "" {
		return v
	}
	return key
}

// Has reports whether key exists in the fallback table.
func (c *Catalog) Has(key string) bool {
	_, ok := c.tables[c.fallback][key]
	return ok
}

// Keys returns the fallback table's keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.tables[c.fallback]))
	for k := range c.tables[c.fallback] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
