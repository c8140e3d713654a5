package imagefilter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingURL     = errors.New("imagefilter: missing upstream url")
	ErrHostNotAllowed = errors.New("imagefilter: upstream host not allowed")
	ErrNotAnImage     = errors.New("imagefilter: upstream response is not an image")
	ErrTooLarge       = errors.New("imagefilter: upstream image exceeds size limit")
	ErrUpstream       = errors.New("imagefilter: upstream request failed")
)

// ProxyConfig configures the image proxy handler.
type ProxyConfig struct {
	AllowedHosts []string      `env:"IMAGE_ALLOWED_HOSTS" envSeparator:","`
	MaxBytes     int64         `env:"IMAGE_MAX_BYTES" envDefault:"5242880"`
	Timeout      time.Duration `env:"IMAGE_FETCH_TIMEOUT" envDefault:"10s"`
	CacheMaxAge  time.Duration `env:"IMAGE_CACHE_MAX_AGE" envDefault:"24h"`
}

// Proxy streams images from allowed upstream hosts. It serves the route the
// Filter guards and is meant to sit behind Filter.Middleware.
type Proxy struct {
	cfg    ProxyConfig
	param  string
	client *http.Client
	log    *slog.Logger
}

// NewProxy creates a Proxy. A nil client gets one with cfg.Timeout.
func NewProxy(cfg ProxyConfig, param string, client *http.Client, log *slog.Logger) *Proxy {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if param == "" {
		param = "url"
	}
	return &Proxy{cfg: cfg, param: param, client: client, log: log}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := p.serve(w, r)
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingURL):
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	case errors.Is(err, ErrHostNotAllowed):
		w.WriteHeader(http.StatusNotFound)
	default:
		p.log.WarnContext(r.Context(), "image proxy failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
	}
}

func (p *Proxy) serve(w http.ResponseWriter, r *http.Request) error {
	raw := r.URL.Query().Get(p.param)
	if raw == "" {
		return ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return ErrMissingURL
	}
	if !p.allowed(u.Hostname()) {
		return ErrHostNotAllowed
	}

	ctx, cancel := context.WithTimeout(r.Context(), p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Join(ErrUpstream, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Join(ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrUpstream, errors.New(resp.Status))
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return ErrNotAnImage
	}
	if p.cfg.MaxBytes > 0 && resp.ContentLength > p.cfg.MaxBytes {
		return ErrTooLarge
	}

	body := io.Reader(resp.Body)
	if p.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, p.cfg.MaxBytes)
	}

	w.Header().Set("Content-Type", ct)
	if p.cfg.CacheMaxAge > 0 {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(p.cfg.CacheMaxAge.Seconds())))
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, err = io.Copy(w, body)
	return err
}

func (p *Proxy) allowed(host string) bool {
	host = strings.ToLower(host)
	for _, a := range p.cfg.AllowedHosts {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && (host == a || strings.HasSuffix(host, "."+a)) {
			return true
		}
	}
	return false
}
