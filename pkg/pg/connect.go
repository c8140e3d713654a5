package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/landing/pkg/retry"
)

// Connect opens a pool and pings it, retrying with a linearly growing pause.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if !cfg.Enabled() {
		return nil, ErrEmptyConnectionString
	}

	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	var pool *pgxpool.Pool
	err = retry.Do(ctx, retry.Policy{
		Attempts: max(1, cfg.RetryAttempts),
		Backoff:  linear{step: cfg.RetryInterval},
	}, func(ctx context.Context, _ int) error {
		p, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			return err
		}
		// Ping surfaces authentication and permission problems early.
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	return pool, nil
}

// linear waits step, 2*step, 3*step and so on.
type linear struct {
	step time.Duration
}

func (l linear) NextInterval(attempt int) time.Duration {
	return time.Duration(attempt) * l.step
}
