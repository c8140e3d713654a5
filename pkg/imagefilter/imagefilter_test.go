package imagefilter_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/pkg/imagefilter"
)

func defaultFilter() *imagefilter.Filter {
	return imagefilter.New(imagefilter.Config{
		Path:         "/_next/image",
		Param:        "url",
		BlockedHosts: []string{"unsplash.com"},
	})
}

func proxyRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/_next/image?w=640&url="+url.QueryEscape(target), nil)
}

func TestFilter_Blocked(t *testing.T) {
	t.Parallel()
	f := defaultFilter()

	tests := []struct {
		name string
		req  *http.Request
		want bool
	}{
		{"blocked host", proxyRequest("https://unsplash.com/photo.jpg"), true},
		{"blocked subdomain", proxyRequest("https://images.unsplash.com/photo-1.jpg"), true},
		{"host match is case insensitive", proxyRequest("https://Images.UNSPLASH.com/p.jpg"), true},
		{"scheme relative url", proxyRequest("//unsplash.com/x.jpg"), true},
		{"hostless value matched raw", proxyRequest("unsplash.com/x.jpg"), true},
		{"trusted host", proxyRequest("https://trusted-cdn.example/photo.jpg"), false},
		{"blocked text only in path", proxyRequest("https://cdn.example/unsplash.com.jpg"), false},
		{"no url param", httptest.NewRequest(http.MethodGet, "/_next/image?w=10", nil), false},
		{"other route", httptest.NewRequest(http.MethodGet, "/pricing?url="+url.QueryEscape("https://unsplash.com/a"), nil), false},
		{"route prefix must be a segment", httptest.NewRequest(http.MethodGet, "/_next/images?url=https://unsplash.com/a", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Blocked(tt.req))
		})
	}
}

func TestFilter_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("blocked request short-circuits with empty 404", func(t *testing.T) {
		t.Parallel()
		called := false
		h := defaultFilter().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, proxyRequest("https://unsplash.com/photo.jpg"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, rec.Body.Len())
		assert.False(t, called)
	})

	t.Run("allowed request passes through unmodified", func(t *testing.T) {
		t.Parallel()
		var got *http.Request
		h := defaultFilter().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			w.WriteHeader(http.StatusTeapot)
		}))

		req := proxyRequest("https://trusted-cdn.example/photo.jpg")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Same(t, req, got)
	})

	t.Run("empty block list never blocks", func(t *testing.T) {
		t.Parallel()
		f := imagefilter.New(imagefilter.Config{Path: "/_next/image", BlockedHosts: []string{" ", ""}})
		assert.False(t, f.Blocked(proxyRequest("https://unsplash.com/photo.jpg")))
	})
}

func TestProxy(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("PNGDATA"))
		case "/big.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	host := strings.TrimPrefix(upstream.URL, "http://")
	hostname := host[:strings.LastIndex(host, ":")]

	p := imagefilter.NewProxy(imagefilter.ProxyConfig{
		AllowedHosts: []string{hostname},
		MaxBytes:     32,
		Timeout:      2 * time.Second,
		CacheMaxAge:  time.Hour,
	}, "url", upstream.Client(), nil)

	serve := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		p.ServeHTTP(rec, proxyRequest(target))
		return rec
	}

	rec := serve(upstream.URL + "/ok.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "PNGDATA", rec.Body.String())

	assert.Equal(t, http.StatusBadGateway, serve(upstream.URL+"/big.png").Code)
	assert.Equal(t, http.StatusBadGateway, serve(upstream.URL+"/page").Code)
	assert.Equal(t, http.StatusBadGateway, serve(upstream.URL+"/missing.png").Code)
	assert.Equal(t, http.StatusNotFound, serve("https://elsewhere.example/a.png").Code)
	assert.Equal(t, http.StatusBadRequest, serve("not a url").Code)
}
