package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/internal/app"
	"github.com/dmitrymomot/landing/pkg/email"
	"github.com/dmitrymomot/landing/pkg/logger"
)

type memorySender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (s *memorySender) SendEmail(_ context.Context, p email.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	return nil
}

func defaultConfig(t *testing.T) app.Config {
	t.Helper()
	cfg, err := env.ParseAs[app.Config]()
	require.NoError(t, err)
	// Tests must not depend on the developer's environment.
	cfg.RateLimit.Backend = "memory"
	cfg.Contact.Store = "memory"
	cfg.Postgres.ConnectionString = ""
	cfg.I18n.Locales = []string{"en", "id"}
	cfg.I18n.DefaultLocale = "en"
	cfg.I18n.PrefixStrategy = "as-needed"
	cfg.ImageFilter.Path = "/_next/image"
	cfg.ImageFilter.Param = "url"
	cfg.ImageFilter.BlockedHosts = []string{"unsplash.com"}
	cfg.RateLimit.Capacity = 2
	return cfg
}

func newServer(t *testing.T) (http.Handler, *memorySender) {
	t.Helper()
	sender := &memorySender{}
	a, err := app.New(context.Background(), defaultConfig(t), logger.Nop(), app.WithEmailSender(sender))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a.Handler(), sender
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig(t)
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.I18n.DefaultLocale = "fr"
	bad.I18n.PrefixStrategy = "sometimes"
	bad.RateLimit.Backend = "etcd"
	bad.LogLevel = "loud"
	err := bad.Validate()
	require.Error(t, err)
	for _, want := range []string{"DEFAULT_LOCALE", "prefix strategy", "RATE_LIMIT_BACKEND", "LOG_LEVEL"} {
		assert.Contains(t, err.Error(), want)
	}

	needsPG := cfg
	needsPG.Contact.Store = "postgres"
	assert.ErrorContains(t, needsPG.Validate(), "PG_CONN_URL")
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig(t)
	cfg.I18n.Locales = []string{"en", "fr"}
	cfg.I18n.DefaultLocale = "en"
	_, err := app.New(context.Background(), cfg, logger.Nop(), app.WithEmailSender(&memorySender{}))
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)

	t.Run("default locale page", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<html lang="en">`)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("prefixed locale page", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/id", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<html lang="id">`)
	})

	t.Run("default locale prefix redirects", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/en?ref=ad", nil))
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/?ref=ad", rec.Header().Get("Location"))
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/id/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `<html lang="id">`)
	})

	t.Run("static assets", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusOK, do(h, httptest.NewRequest(http.MethodGet, "/health/live", nil)).Code)

		rec := do(h, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ready"`)
	})

	t.Run("blocked image host", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/_next/image?url=https://images.unsplash.com/photo.jpg&w=64", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("image proxy is not localized", func(t *testing.T) {
		t.Parallel()
		rec := do(h, httptest.NewRequest(http.MethodGet, "/_next/image", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Contact(t *testing.T) {
	t.Parallel()

	h, sender := newServer(t)
	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","message":"Tell me about pricing","locale":"id"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "192.0.2.10:4000"
		return do(h, req)
	}

	assert.Equal(t, http.StatusCreated, post().Code)
	assert.Equal(t, http.StatusCreated, post().Code)

	limited := post()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@example.com", sender.sent[0].ReplyTo)
}
