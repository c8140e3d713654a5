package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

// Translator holds the message catalog of every locale. The catalog is loaded
// once by NewTranslator and never mutated afterwards, so a Translator is safe
// for concurrent use without locking.
type Translator struct {
	messages      map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	requiredKeys  []string
	requiredLangs []string
}

// NewTranslator loads the catalog from src. When required keys are configured
// the catalog is checked for completeness and an *IncompleteCatalogError is
// returned if any required locale lacks any required key.
func NewTranslator(ctx context.Context, src Source, opts ...Option) (*Translator, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	messages, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	for locale, tree := range messages {
		if locale == "" || tree == nil {
			return nil, fmt.Errorf("%w: empty locale or nil tree for %q", ErrInvalidFileLayout, locale)
		}
	}
	t.messages = messages

	if len(t.requiredKeys) > 0 {
		langs := t.requiredLangs
		if len(langs) == 0 {
			langs = t.SupportedLanguages()
		}
		if err := t.Validate(langs, t.requiredKeys); err != nil {
			return nil, err
		}
	}

	t.logger.InfoContext(ctx, "translations loaded",
		slog.Any("languages", t.SupportedLanguages()),
		slog.Int("required_keys", len(t.requiredKeys)),
	)
	return t, nil
}

// SupportedLanguages returns the sorted locale codes present in the catalog.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.messages))
	for l := range t.messages {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// Validate checks that every key exists for every locale in langs and returns
// an *IncompleteCatalogError listing all gaps.
func (t *Translator) Validate(langs, keys []string) error {
	var missing []MissingKeyError
	for _, lang := range langs {
		tree := t.messages[lang]
		for _, key := range keys {
			if _, ok := walk(tree, key); !ok {
				missing = append(missing, MissingKeyError{Locale: lang, Key: key})
			}
		}
	}
	if len(missing) > 0 {
		return &IncompleteCatalogError{Missing: missing}
	}
	return nil
}

// HasTranslation reports whether key exists for lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, err := t.Lookup(lang, key)
	return err == nil
}

// Lookup returns the raw value at the dotted key path for lang: a string, a
// []any for lists, or a map[string]any for subtrees. It never falls back to
// another locale; a missing key yields a *MissingKeyError.
func (t *Translator) Lookup(lang, key string) (any, error) {
	tree, ok := t.messages[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLanguageNotSupported, lang)
	}
	v, ok := walk(tree, key)
	if !ok {
		return nil, &MissingKeyError{Locale: lang, Key: key}
	}
	return v, nil
}

// Text returns the string at key for lang with %{name} placeholders filled
// from args, given as name, value pairs.
func (t *Translator) Text(lang, key string, args ...string) (string, error) {
	v, err := t.Lookup(lang, key)
	if err != nil {
		return "", err
	}
	s, ok := scalar(v)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %T, want string", ErrUnexpectedValue, lang, key, v)
	}
	return substitute(s, args), nil
}

// Strings returns the list at key for lang. Every element must be a scalar.
func (t *Translator) Strings(lang, key string) ([]string, error) {
	v, err := t.Lookup(lang, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is %T, want list", ErrUnexpectedValue, lang, key, v)
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := scalar(item)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s[%d] is %T, want string", ErrUnexpectedValue, lang, key, i, item)
		}
		out[i] = s
	}
	return out, nil
}

// T is the lenient form of Text for call sites that cannot handle an error.
// A failed lookup returns the key itself (or "" when fallback to key is off)
// and is logged when missing-translation logging is on.
func (t *Translator) T(lang, key string, args ...string) string {
	s, err := t.Text(lang, key, args...)
	if err == nil {
		return s
	}
	if t.logMissing {
		t.logger.Warn("translation lookup failed", slog.String("locale", lang), slog.String("key", key), slog.Any("error", err))
	}
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// Tc translates key using the locale stored in ctx, or the translator's default language.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	lang, ok := LocaleFromContext(ctx)
	if !ok {
		lang = t.defaultLang
	}
	return t.T(lang, key, args...)
}

// walk traverses a nested map along a dot separated key path.
func walk(tree map[string]any, key string) (any, bool) {
	if tree == nil || key == "" {
		return nil, false
	}
	var cur any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := normalizeMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func scalar(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	case int, int64, float64, bool:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with the matching value from name, value pairs.
// Unknown placeholders are left in place.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
