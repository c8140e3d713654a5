package httpserver

import "time"

type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"` // covers the contact delivery budget
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults and
// opts are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := []Option{func(c *options) {
		if cfg.Addr != "" {
			c.addr = cfg.Addr
		}
		c.readHeaderTimeout = cmpOr(cfg.ReadHeaderTimeout, c.readHeaderTimeout)
		c.readTimeout = cmpOr(cfg.ReadTimeout, c.readTimeout)
		c.writeTimeout = cmpOr(cfg.WriteTimeout, c.writeTimeout)
		c.idleTimeout = cmpOr(cfg.IdleTimeout, c.idleTimeout)
		c.shutdownTimeout = cmpOr(cfg.ShutdownTimeout, c.shutdownTimeout)
	}}
	return New(append(base, opts...)...)
}

func cmpOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
