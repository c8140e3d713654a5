package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/retry"
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBackoff replaces the exponential backoff between notification attempts.
func WithBackoff(b retry.Backoff) ServiceOption {
	return func(s *Service) {
		s.backoff = b
	}
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service stores submissions and notifies about them.
type Service struct {
	store    Store
	notifier Notifier
	cfg      Config
	backoff  retry.Backoff
	log      *slog.Logger
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, cfg Config, opts ...ServiceOption) (*Service, error) {
	if store == nil || notifier == nil {
		return nil, ErrNilDependency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		backoff: retry.Exponential{
			InitialInterval: cfg.RetryInterval,
			MaxInterval:     cfg.SendTimeout,
			Multiplier:      2,
			JitterFactor:    0.1,
		},
		log: logger.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit normalizes and validates sub, stores it as pending and notifies.
//
// Invalid input returns validator.ValidationErrors and stores nothing. Each
// notification attempt is bounded by Config.SendTimeout and at most
// Config.SendAttempts are made. When every attempt fails the record is marked
// failed and the error wraps ErrDeliveryFailed; the returned Record is still
// valid in that case.
func (s *Service) Submit(ctx context.Context, sub Submission, meta Meta) (Record, error) {
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return Record{}, err
	}

	now := s.now().UTC()
	rec := Record{
		ID:         uuid.New(),
		Submission: sub,
		Locale:     meta.Locale,
		IP:         meta.IP,
		RequestID:  meta.RequestID,
		UserAgent:  meta.UserAgent,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return Record{}, errors.Join(ErrStoreFailed, err)
	}

	log := s.log.With(logger.Component("contact"), logger.SubmissionID(rec.ID))

	policy := retry.Policy{
		Attempts: s.cfg.SendAttempts,
		Timeout:  s.cfg.SendTimeout,
		Backoff:  s.backoff,
		OnRetry: func(ctx context.Context, attempt int, err error, wait time.Duration) {
			log.WarnContext(ctx, "contact notification failed, retrying",
				logger.Attempt(attempt),
				logger.Error(err),
				logger.Duration(wait),
			)
		},
	}
	sendErr := retry.Do(ctx, policy, func(ctx context.Context, _ int) error {
		return s.notifier.Notify(ctx, rec)
	})

	rec.Status = StatusDelivered
	if sendErr != nil {
		rec.Status = StatusFailed
	}
	// The outcome is recorded even when the caller has gone away.
	if err := s.store.UpdateStatus(context.WithoutCancel(ctx), rec.ID, rec.Status); err != nil {
		log.ErrorContext(ctx, "failed to update contact submission status",
			slog.String("status", string(rec.Status)),
			logger.Error(err),
		)
	} else {
		rec.UpdatedAt = s.now().UTC()
	}

	if sendErr != nil {
		log.ErrorContext(ctx, "contact notification not delivered", logger.Error(sendErr))
		return rec, errors.Join(ErrDeliveryFailed, sendErr)
	}
	log.InfoContext(ctx, "contact submission delivered", logger.Locale(rec.Locale))
	return rec, nil
}
