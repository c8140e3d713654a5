package contact

import (
	"errors"
	"net/url"
	"time"
)

// Config holds submission and endpoint settings.
type Config struct {
	SendTimeout  time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"10s"`
	SendAttempts int           `env:"CONTACT_SEND_ATTEMPTS" envDefault:"3"`
	// RetryInterval is the first backoff interval; it doubles per attempt.
	RetryInterval time.Duration `env:"CONTACT_RETRY_INTERVAL" envDefault:"500ms"`
	MaxBodyBytes  int64         `env:"CONTACT_MAX_BODY_BYTES" envDefault:"16384"`
	// ResetDelay is how long the success or error message stays before the
	// form returns to idle.
	ResetDelay time.Duration `env:"CONTACT_RESET_DELAY" envDefault:"5s"`
	// Store selects "memory" or "postgres".
	Store string `env:"CONTACT_STORE" envDefault:"memory"`
	// WebhookURL, when set, receives every submission as signed JSON in
	// addition to the notification email.
	WebhookURL    string `env:"CONTACT_WEBHOOK_URL"`
	WebhookSecret string `env:"CONTACT_WEBHOOK_SECRET"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		SendTimeout:   10 * time.Second,
		SendAttempts:  3,
		RetryInterval: 500 * time.Millisecond,
		MaxBodyBytes:  16 << 10,
		ResetDelay:    5 * time.Second,
		Store:         "memory",
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.SendTimeout <= 0 {
		errs = append(errs, errors.New("CONTACT_SEND_TIMEOUT must be positive"))
	}
	if c.SendAttempts < 1 {
		errs = append(errs, errors.New("CONTACT_SEND_ATTEMPTS must be at least 1"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("CONTACT_MAX_BODY_BYTES must be positive"))
	}
	if c.ResetDelay < 0 {
		errs = append(errs, errors.New("CONTACT_RESET_DELAY must not be negative"))
	}
	if c.Store != "memory" && c.Store != "postgres" {
		errs = append(errs, errors.New(`CONTACT_STORE must be "memory" or "postgres"`))
	}
	if c.WebhookURL != "" {
		if u, err := url.Parse(c.WebhookURL); err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			errs = append(errs, errors.New("CONTACT_WEBHOOK_URL must be an absolute http(s) URL"))
		}
	}
	return errors.Join(errs...)
}
