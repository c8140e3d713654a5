package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

func TestNewLangExtractor(t *testing.T) {
	t.Parallel()

	extract := i18n.NewLangExtractor(mustRegistry(t, i18n.PrefixNever), i18n.WithCookieName("c"), i18n.WithQueryParamName("q"))

	tests := []struct {
		name   string
		cookie string
		query  string
		accept string
		want   string
	}{
		{name: "cookie first", cookie: "id", query: "en", accept: "en", want: "id"},
		{name: "query second", query: "id", accept: "en", want: "id"},
		{name: "region collapses to base", query: "ID-id", want: "id"},
		{name: "invalid cookie ignored", cookie: "fr", accept: "id", want: "id"},
		{name: "oversized value ignored", query: strings.Repeat("a", 64), want: ""},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "c", Value: tt.cookie})
			}
			if tt.query != "" {
				req.URL.RawQuery = "q=" + tt.query
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, extract(req))
		})
	}
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	_, ok := i18n.LocaleFromContext(context.Background())
	assert.False(t, ok)

	ctx := i18n.SetLocale(context.Background(), "id")
	assert.Equal(t, "id", i18n.GetLocale(ctx))

	attr, ok := i18n.LoggerExtractor()(ctx)
	assert.True(t, ok)
	assert.Equal(t, "locale", attr.Key)
	assert.Equal(t, "id", attr.Value.String())
}
