package i18n

import (
	"context"
	"log/slog"
)

// DefaultLanguage is returned by GetLocale when the context carries no locale.
const DefaultLanguage = "en"

type localeContextKey struct{}

// SetLocale stores the resolved locale in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, ok := LocaleFromContext(ctx); ok {
		return locale
	}
	return DefaultLanguage
}

// LocaleFromContext returns the locale stored in ctx and whether one was set.
func LocaleFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale, locale != ""
}

// LoggerExtractor adds "locale" to log records of requests that went through locale routing.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if locale, ok := LocaleFromContext(ctx); ok {
			return slog.String("locale", locale), true
		}
		return slog.Attr{}, false
	}
}
