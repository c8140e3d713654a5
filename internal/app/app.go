// Package app wires configuration, infrastructure and HTTP routes into a
// runnable landing page server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/landing/internal/contact"
	"github.com/dmitrymomot/landing/internal/site"
	"github.com/dmitrymomot/landing/pkg/email"
	"github.com/dmitrymomot/landing/pkg/environment"
	"github.com/dmitrymomot/landing/pkg/handler"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/imagefilter"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/pg"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/redis"
	"github.com/dmitrymomot/landing/pkg/requestid"
	"github.com/dmitrymomot/landing/pkg/webhook"
)

// App holds the long-lived dependencies of the server.
type App struct {
	cfg Config
	env environment.Environment
	log *slog.Logger

	reg     *i18n.Registry
	catalog *i18n.Translator
	views   *site.Views

	filter  *imagefilter.Filter
	proxy   *imagefilter.Proxy
	limiter *ratelimiter.Bucket
	contact *contact.Handler

	sender       email.EmailSender
	errorHandler handler.ErrorHandler
	checks       map[string]httpserver.Check
	closers      []func()
}

// Option configures New.
type Option func(*App)

// WithEmailSender replaces the sender selected from Config.Email.
func WithEmailSender(s email.EmailSender) Option {
	return func(a *App) {
		a.sender = s
	}
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Environment(), cfg.ServiceName),
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			i18n.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if l, err := cfg.logLevel(); err == nil && l != nil {
		opts = append(opts, logger.WithLevel(*l))
	}
	if f := strings.ToLower(cfg.LogFormat); f != "" {
		opts = append(opts, logger.WithFormat(logger.Format(f)))
	}
	return logger.New(opts...)
}

// New connects to the configured backends and prepares the routes. Close
// releases what New opened, also when New fails halfway.
func New(ctx context.Context, cfg Config, log *slog.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if log == nil {
		log = logger.Nop()
	}

	a := &App{
		cfg:    cfg,
		env:    cfg.Environment(),
		log:    log,
		checks: make(map[string]httpserver.Check),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	strategy, err := i18n.ParsePrefixStrategy(a.cfg.I18n.PrefixStrategy)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	a.reg, err = i18n.NewRegistry(a.cfg.I18n.Locales, a.cfg.I18n.DefaultLocale, strategy)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	a.catalog, err = site.NewCatalog(ctx, a.reg, a.log.With(logger.Component("i18n")))
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}
	a.views, err = site.NewViews(a.catalog, a.reg)
	if err != nil {
		return err
	}
	a.errorHandler = handler.NewErrorHandler(a.log, handler.ErrorHandlerConfig{
		ErrorPage:  a.views.ErrorPage,
		ErrorToast: a.views.ErrorToast,
	})

	a.filter = imagefilter.New(a.cfg.ImageFilter)
	a.proxy = imagefilter.NewProxy(a.cfg.ImageProxy, a.cfg.ImageFilter.Param, nil, a.log.With(logger.Component("image_proxy")))

	var pool *pgxpool.Pool
	if a.cfg.Postgres.Enabled() {
		if pool, err = a.connectPostgres(ctx); err != nil {
			return err
		}
	}

	var rdb *goredis.Client
	if a.cfg.RateLimit.Backend == "redis" {
		if rdb, err = a.connectRedis(ctx); err != nil {
			return err
		}
	}

	if err := a.initRateLimiter(rdb); err != nil {
		return err
	}
	return a.initContact(pool)
}

func (a *App) connectPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pg.Connect(ctx, a.cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	a.checks["postgres"] = pg.Healthcheck(pool)

	if err := pg.Migrate(ctx, pool, a.cfg.Postgres, contact.Migrations(), a.log); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return pool, nil
}

func (a *App) connectRedis(ctx context.Context) (*goredis.Client, error) {
	rdb, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := rdb.Close(); err != nil {
			a.log.Error("failed to close redis client", logger.Error(err))
		}
	})
	a.checks["redis"] = redis.Healthcheck(rdb)
	return rdb, nil
}

func (a *App) initRateLimiter(rdb *goredis.Client) error {
	var store ratelimiter.Store
	if rdb != nil {
		store = ratelimiter.NewRedisStore(rdb, ratelimiter.WithKeyPrefix(a.cfg.ServiceName+":ratelimit:"))
	} else {
		mem := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, mem.Close)
		store = mem
	}

	bucket, err := ratelimiter.NewBucket(store, a.cfg.RateLimit)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	a.limiter = bucket
	return nil
}

func (a *App) initContact(pool *pgxpool.Pool) error {
	var store contact.Store = contact.NewMemoryStore()
	if a.cfg.Contact.Store == "postgres" {
		store = contact.NewPostgresStore(pool)
	}

	sender := a.sender
	if sender == nil {
		var err error
		if sender, err = email.NewSender(a.cfg.Email); err != nil {
			return fmt.Errorf("email sender: %w", err)
		}
	}
	var notifier contact.Notifier = contact.NewEmailNotifier(sender, a.catalog, a.cfg.Email.SupportEmail, a.reg.DefaultLocale())
	if a.cfg.Contact.WebhookURL != "" {
		hook := webhook.NewSender(
			webhook.WithSecret(a.cfg.Contact.WebhookSecret),
			webhook.WithCircuitBreaker(webhook.NewCircuitBreaker(0, 0, 0)),
			webhook.WithUserAgent(a.cfg.ServiceName+"-webhook/1.0"),
		)
		notifier = contact.Notifiers(notifier, contact.NewWebhookNotifier(hook, a.cfg.Contact.WebhookURL))
	}

	log := a.log.With(logger.Component("contact"))
	svc, err := contact.NewService(store, notifier, a.cfg.Contact, contact.WithLogger(log))
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	a.contact = contact.NewHandler(svc, a.catalog, a.reg, a.views.ContactStatus, a.cfg.Contact,
		contact.WithHandlerLogger(log),
		contact.WithErrorHandler(a.errorHandler),
	)
	return nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (a *App) Run(ctx context.Context, opts ...httpserver.Option) error {
	srv := httpserver.NewFromConfig(a.cfg.HTTP, append([]httpserver.Option{httpserver.WithLogger(a.log)}, opts...)...)
	return srv.Run(ctx, a.Handler())
}

// Close releases backends in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
