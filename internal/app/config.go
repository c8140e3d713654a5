package app

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/landing/internal/contact"
	"github.com/dmitrymomot/landing/pkg/email"
	"github.com/dmitrymomot/landing/pkg/environment"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/imagefilter"
	"github.com/dmitrymomot/landing/pkg/pg"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/redis"
)

// Config is the whole process configuration, parsed from the environment by
// config.Load. Nested configs keep their own env tags.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"landing"`
	// LogLevel and LogFormat override the environment defaults when set.
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	I18n        I18nConfig
	HTTP        httpserver.Config
	ImageFilter imagefilter.Config
	ImageProxy  imagefilter.ProxyConfig
	RateLimit   ratelimiter.Config
	Redis       redis.Config
	Postgres    pg.Config
	Email       email.Config
	Contact     contact.Config
}

type I18nConfig struct {
	Locales        []string `env:"LOCALES" envDefault:"en,id" envSeparator:","`
	DefaultLocale  string   `env:"DEFAULT_LOCALE" envDefault:"en"`
	PrefixStrategy string   `env:"LOCALE_PREFIX" envDefault:"as-needed"`
	CookieName     string   `env:"LOCALE_COOKIE" envDefault:"lang"`
}

func (c Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// Validate checks settings that only make sense together.
func (c Config) Validate() error {
	var errs []error

	if _, err := i18n.ParsePrefixStrategy(c.I18n.PrefixStrategy); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(c.I18n.Locales, c.I18n.DefaultLocale) {
		errs = append(errs, fmt.Errorf("DEFAULT_LOCALE %q is not in LOCALES", c.I18n.DefaultLocale))
	}
	if _, err := c.logLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.LogFormat))
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND %q must be memory or redis", c.RateLimit.Backend))
	}
	if err := c.Contact.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Contact.Store == "postgres" && !c.Postgres.Enabled() {
		errs = append(errs, errors.New("CONTACT_STORE=postgres requires PG_CONN_URL"))
	}
	return errors.Join(errs...)
}

func (c Config) logLevel() (*slog.Level, error) {
	if c.LogLevel == "" {
		return nil, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return &l, nil
}
