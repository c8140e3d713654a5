package i18n

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Registry construction
	ErrNoLocales                  = errors.New("i18n: at least one locale is required")
	ErrInvalidLocaleCode          = errors.New("i18n: invalid locale code")
	ErrDefaultLocaleNotRegistered = errors.New("i18n: default locale is not registered")
	ErrInvalidPrefixStrategy      = errors.New("i18n: invalid prefix strategy")

	// Catalog lookup
	ErrLanguageNotSupported = errors.New("i18n: language not supported")
	ErrMissingKey           = errors.New("i18n: missing translation key")
	ErrUnexpectedValue      = errors.New("i18n: unexpected translation value type")
	ErrIncompleteCatalog    = errors.New("i18n: catalog is incomplete")

	// Loading
	ErrNilSource           = errors.New("i18n: translation source is nil")
	ErrLoadingCancelled    = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadSource  = errors.New("i18n: failed to read translation source")
	ErrNoTranslationFiles  = errors.New("i18n: no translation files found")
	ErrFailedToParseFile   = errors.New("i18n: failed to parse translation file")
	ErrFailedToParseYAML   = errors.New("i18n: failed to parse YAML content")
	ErrFailedToParseJSON   = errors.New("i18n: failed to parse JSON content")
	ErrInvalidFileLayout   = errors.New("i18n: translation file must map locale codes to message trees")
	ErrUnsupportedFileType = errors.New("i18n: unsupported translation file type")
)

// MissingKeyError reports a key path absent from one locale's catalog.
type MissingKeyError struct {
	Locale string
	Key    string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("i18n: missing key %q for locale %q", e.Key, e.Locale)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// IncompleteCatalogError lists every (locale, key) pair a completeness check found missing.
type IncompleteCatalogError struct {
	Missing []MissingKeyError
}

func (e *IncompleteCatalogError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "i18n: catalog is incomplete, %d missing key(s):", len(e.Missing))
	for _, m := range e.Missing {
		b.WriteString(" ")
		b.WriteString(m.Locale)
		b.WriteString(":")
		b.WriteString(m.Key)
	}
	return b.String()
}

func (e *IncompleteCatalogError) Unwrap() error { return ErrIncompleteCatalog }
