package site

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

// NewCatalog loads the embedded messages and refuses to start unless every
// registered locale defines every key the site renders.
func NewCatalog(ctx context.Context, reg *i18n.Registry, log *slog.Logger) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx,
		i18n.NewFSSource(i18n.YAMLParser{}, messagesFS, "messages"),
		i18n.WithDefaultLanguage(reg.DefaultLocale()),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(true),
		i18n.WithRequiredLanguages(reg.Locales()...),
		i18n.WithRequiredKeys(Keys()...),
	)
}
