package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "landing-webhook/1.0"
	maxErrorBody     = 512
)

// Sender delivers JSON payloads. Zero value is not usable; use NewSender.
type Sender struct {
	client    *http.Client
	secret    string
	breaker   *CircuitBreaker
	userAgent string
	now       func() time.Time
}

type Option func(*Sender)

// WithHTTPClient replaces the default client with a 10 second timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithSecret signs every payload with secret.
func WithSecret(secret string) Option {
	return func(s *Sender) {
		s.secret = secret
	}
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(s *Sender) {
		s.breaker = cb
	}
}

func WithUserAgent(ua string) Option {
	return func(s *Sender) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

func NewSender(opts ...Option) *Sender {
	s := &Sender{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send marshals data and POSTs it to endpoint once.
func (s *Sender) Send(ctx context.Context, endpoint string, data any) error {
	if err := validateURL(endpoint); err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}

	if s.breaker != nil && !s.breaker.Allow() {
		return ErrCircuitOpen
	}

	err = s.deliver(ctx, endpoint, payload)
	if s.breaker != nil {
		// A rejected payload says nothing about the endpoint's health.
		if err == nil || errors.Is(err, ErrPermanentFailure) {
			s.breaker.RecordSuccess()
		} else {
			s.breaker.RecordFailure()
		}
	}
	return err
}

func (s *Sender) deliver(ctx context.Context, endpoint string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	if s.secret != "" {
		sig, err := Sign(s.secret, payload, s.now())
		if err != nil {
			return err
		}
		sig.Apply(req.Header)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Join(ErrTemporaryFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := fmt.Errorf("webhook returned status %d: %s", resp.StatusCode,
		strings.Join(strings.Fields(string(body)), " "))
	if permanent(resp.StatusCode) {
		return errors.Join(ErrPermanentFailure, statusErr)
	}
	return errors.Join(ErrTemporaryFailure, statusErr)
}

func permanent(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return code >= 400 && code < 500
}

func validateURL(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, endpoint)
	}
	return nil
}
