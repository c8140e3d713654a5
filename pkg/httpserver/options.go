package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the Server.
type Option func(*options)

type options struct {
	addr              string
	readHeaderTimeout time.Duration
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
	handleSignals     bool
	startHooks        []func(addr string)
	stopHooks         []func()
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: addr cannot be empty")
	}
	return func(o *options) { o.addr = addr }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithShutdownTimeout: duration must be > 0")
	}
	return func(o *options) { o.shutdownTimeout = d }
}

// WithLogger sets the server logger. It also receives net/http's own error log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithoutSignals leaves SIGINT and SIGTERM to the caller; only ctx stops Run.
func WithoutSignals() Option {
	return func(o *options) { o.handleSignals = false }
}

// WithStartHook runs h with the listen address once the listener is bound.
func WithStartHook(h func(addr string)) Option {
	return func(o *options) { o.startHooks = append(o.startHooks, h) }
}

// WithStopHook runs h after shutdown completes.
func WithStopHook(h func()) Option {
	return func(o *options) { o.stopHooks = append(o.stopHooks, h) }
}
