package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor returns the locale a request asks for, or "" when it expresses no preference.
type LangExtractor func(r *http.Request) string

// ExtractorOption configures NewLangExtractor.
type ExtractorOption func(*extractorConfig)

type extractorConfig struct {
	cookieName string
	queryParam string
}

// WithCookieName sets the cookie consulted first. Defaults to "lang".
func WithCookieName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter consulted after the cookie. Defaults to "lang".
func WithQueryParamName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.queryParam = name
		}
	}
}

// maxLangCodeLength bounds cookie and query values before lookup.
const maxLangCodeLength = 35

// NewLangExtractor builds an extractor that checks, in order, the locale
// cookie, the query parameter and the Accept-Language header. Only locales
// registered in reg are ever returned.
func NewLangExtractor(reg *Registry, opts ...ExtractorOption) LangExtractor {
	cfg := &extractorConfig{cookieName: "lang", queryParam: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}

	accept := func(v string) string {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || len(v) > maxLangCodeLength {
			return ""
		}
		if reg.IsSupported(v) {
			return v
		}
		// "id-ID" style values collapse to their base language.
		if base, _, ok := strings.Cut(v, "-"); ok && reg.IsSupported(base) {
			return base
		}
		return ""
	}

	return func(r *http.Request) string {
		if c, err := r.Cookie(cfg.cookieName); err == nil {
			if l := accept(c.Value); l != "" {
				return l
			}
		}
		if l := accept(r.URL.Query().Get(cfg.queryParam)); l != "" {
			return l
		}
		return reg.Match(r.Header.Get("Accept-Language"))
	}
}
