package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the locale Tc uses when the context carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether T returns the key on failed lookups. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the translator logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs every failed T lookup at warn level.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

// WithRequiredKeys makes NewTranslator fail unless every key exists in every required language.
func WithRequiredKeys(keys ...string) Option {
	return func(t *Translator) {
		t.requiredKeys = append(t.requiredKeys, keys...)
	}
}

// WithRequiredLanguages sets the locales checked by WithRequiredKeys.
// Defaults to every locale found in the catalog.
func WithRequiredLanguages(langs ...string) Option {
	return func(t *Translator) {
		t.requiredLangs = append(t.requiredLangs, langs...)
	}
}
