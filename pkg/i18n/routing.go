package i18n

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultExcludedPrefixes are path prefixes the routing middleware never localizes.
var DefaultExcludedPrefixes = []string{"/api", "/static", "/health"}

// RoutingOption configures RoutingMiddleware.
type RoutingOption func(*routingConfig)

type routingConfig struct {
	excluded     []string
	extractor    LangExtractor
	cookieName   string
	cookieMaxAge time.Duration
	secureCookie bool
	logger       *slog.Logger
}

// WithExcludedPrefixes replaces DefaultExcludedPrefixes.
func WithExcludedPrefixes(prefixes ...string) RoutingOption {
	return func(c *routingConfig) {
		c.excluded = prefixes
	}
}

// WithLocaleExtractor sets how the locale is read under PrefixNever.
// Defaults to NewLangExtractor with the locale cookie name.
func WithLocaleExtractor(extr LangExtractor) RoutingOption {
	return func(c *routingConfig) {
		if extr != nil {
			c.extractor = extr
		}
	}
}

// WithLocaleCookie sets the name and lifetime of the cookie that remembers the
// locale under PrefixNever.
func WithLocaleCookie(name string, maxAge time.Duration, secure bool) RoutingOption {
	return func(c *routingConfig) {
		if name != "" {
			c.cookieName = name
		}
		if maxAge > 0 {
			c.cookieMaxAge = maxAge
		}
		c.secureCookie = secure
	}
}

// WithRoutingLogger sets the logger used for redirect debug records.
func WithRoutingLogger(l *slog.Logger) RoutingOption {
	return func(c *routingConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// RoutingMiddleware resolves the locale of every page request against reg.
//
// Requests under an excluded prefix and requests for files (a last path
// segment containing a dot) pass through untouched. When the resolution asks
// for a redirect the middleware answers 307 with the query string preserved.
// Otherwise it stores the locale in the context and rewrites r.URL.Path to the
// path without its locale segment, so routes are declared once without a
// locale prefix.
func RoutingMiddleware(reg *Registry, opts ...RoutingOption) func(http.Handler) http.Handler {
	cfg := &routingConfig{
		excluded:     DefaultExcludedPrefixes,
		cookieName:   "lang",
		cookieMaxAge: 365 * 24 * time.Hour,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.extractor == nil {
		cfg.extractor = NewLangExtractor(reg, WithCookieName(cfg.cookieName))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := reg.Resolve(r.URL.Path)

			if res.Redirect != "" {
				target := res.Redirect
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				if reg.Strategy() == PrefixNever {
					http.SetCookie(w, cfg.cookie(res.Locale))
				}
				cfg.logger.DebugContext(r.Context(), "locale redirect",
					slog.String("path", r.URL.Path),
					slog.String("redirect_to", target),
					slog.String("locale", res.Locale),
				)
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
				return
			}

			locale := res.Locale
			if reg.Strategy() == PrefixNever {
				if l := cfg.extractor(r); reg.IsSupported(l) {
					locale = l
				}
			}

			r = r.WithContext(SetLocale(r.Context(), locale))
			if res.Path != r.URL.Path {
				u := *r.URL
				u.Path = res.Path
				u.RawPath = ""
				r.URL = &u
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c *routingConfig) skip(path string) bool {
	for _, p := range c.excluded {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	last := path[strings.LastIndex(path, "/")+1:]
	return strings.Contains(last, ".")
}

func (c *routingConfig) cookie(locale string) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   int(c.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
