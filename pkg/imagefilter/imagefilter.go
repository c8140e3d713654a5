// Package imagefilter guards the image proxy route against fetches of
// disallowed upstream hosts.
package imagefilter

import (
	"net/http"
	"net/url"
	"strings"
)

// Config selects the guarded route and the blocked upstream hosts.
type Config struct {
	// Path is the image proxy route. Requests to Path and below are inspected.
	Path string `env:"IMAGE_PROXY_PATH" envDefault:"/_next/image"`
	// Param is the query parameter holding the upstream image URL.
	Param string `env:"IMAGE_PROXY_PARAM" envDefault:"url"`
	// BlockedHosts are matched as case-insensitive substrings of the upstream host.
	BlockedHosts []string `env:"IMAGE_BLOCKED_HOSTS" envDefault:"unsplash.com" envSeparator:","`
}

// Filter decides whether an image proxy request must be dropped.
type Filter struct {
	path    string
	param   string
	blocked []string
}

// New builds a Filter from cfg. Empty blocked entries are ignored.
func New(cfg Config) *Filter {
	f := &Filter{
		path:  strings.TrimSuffix(cfg.Path, "/"),
		param: cfg.Param,
	}
	if f.param == "" {
		f.param = "url"
	}
	for _, h := range cfg.BlockedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			f.blocked = append(f.blocked, h)
		}
	}
	return f
}

// Blocked reports whether r targets the proxy route with an upstream URL whose
// host contains a blocked substring. A value that does not parse as a URL
// with a host is matched as a whole.
func (f *Filter) Blocked(r *http.Request) bool {
	if len(f.blocked) == 0 || !f.onRoute(r.URL.Path) {
		return false
	}
	raw := r.URL.Query().Get(f.param)
	if raw == "" {
		return false
	}
	target := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		target = u.Hostname()
	}
	target = strings.ToLower(target)
	for _, b := range f.blocked {
		if strings.Contains(target, b) {
			return true
		}
	}
	return false
}

func (f *Filter) onRoute(p string) bool {
	if f.path == "" {
		return false
	}
	return p == f.path || strings.HasPrefix(p, f.path+"/")
}

// Middleware answers blocked requests with an empty 404 and stops the chain.
func (f *Filter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.Blocked(r) {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
