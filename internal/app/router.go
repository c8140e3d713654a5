package app

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/landing/internal/site"
	"github.com/dmitrymomot/landing/pkg/clientip"
	"github.com/dmitrymomot/landing/pkg/environment"
	"github.com/dmitrymomot/landing/pkg/handler"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/requestid"
)

const readinessTimeout = 2 * time.Second

// Handler returns the router. Abusive image proxy requests are dropped
// before locale routing runs; API, static, health and image proxy paths are
// never localized.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(a.env),
		accessLog(a.log),
		a.filter.Middleware,
		i18n.RoutingMiddleware(a.reg,
			i18n.WithExcludedPrefixes(append(slices.Clone(i18n.DefaultExcludedPrefixes), a.cfg.ImageFilter.Path)...),
			i18n.WithLocaleExtractor(i18n.NewLangExtractor(a.reg, i18n.WithCookieName(a.cfg.I18n.CookieName))),
			i18n.WithLocaleCookie(a.cfg.I18n.CookieName, 0, a.env == environment.Production),
			i18n.WithRoutingLogger(a.log.With(logger.Component("i18n"))),
		),
	)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(site.Static())))
	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(a.log, readinessTimeout, a.checks))
	r.Get(a.cfg.ImageFilter.Path, a.proxy.ServeHTTP)

	r.With(ratelimiter.Middleware(a.limiter, ratelimiter.ByIP,
		ratelimiter.WithDeniedHandler(a.contact.RateLimited()),
		ratelimiter.WithLogger(a.log),
	)).Post(site.ContactEndpoint, a.contact.Submit())

	r.Get("/", site.PageHandler(a.catalog, a.reg, a.views, a.log, a.errorHandler))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.errorHandler(handler.NewContext(w, r), handler.NewHTTPError(http.StatusMethodNotAllowed, ""))
	})
	return r
}
