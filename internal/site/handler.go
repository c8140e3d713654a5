package site

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/landing/pkg/binder"
	"github.com/dmitrymomot/landing/pkg/handler"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/logger"
)

type pageRequest struct {
	// Contact carries the outcome of a contact form post made without JavaScript.
	Contact string `query:"contact"`
}

// PageHandler serves the landing page in the locale resolved by the i18n
// routing middleware. The request path must already be stripped of its
// locale segment.
func PageHandler(cat Catalog, reg *i18n.Registry, views *Views, log *slog.Logger, errorHandler handler.ErrorHandler) http.HandlerFunc {
	serve := func(ctx handler.Context, req pageRequest) handler.Response {
		locale := i18n.GetLocale(ctx)
		if !reg.IsSupported(locale) {
			locale = reg.DefaultLocale()
		}

		page, err := Build(cat, locale, reg, ctx.Request().URL.Path)
		if err != nil {
			log.ErrorContext(ctx, "failed to build page",
				logger.Component("site"),
				logger.Locale(locale),
				logger.Error(err),
			)
			return handler.Error(err)
		}

		switch req.Contact {
		case StatusSuccess, StatusError:
			page.Contact.Status = req.Contact
		}
		return handler.Templ(views.Page(page))
	}

	return handler.Wrap(serve,
		handler.WithBinders[pageRequest](binder.Query()),
		handler.WithErrorHandler[pageRequest](errorHandler),
	)
}
