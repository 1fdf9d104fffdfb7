// Package lockout counts failed officer logins and blocks further attempts once
// an officer id reaches the configured limit inside the window.
package lockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "custody/pkg/domain-errors"
	"custody/pkg/requestcontext"
)

const keyPrefix = "custody:lockout:"

// Store keeps failure counters. A counter starts its window at the first failure
// and disappears when the window ends.
type Store interface {
	RecordFailure(ctx context.Context, key string, window time.Duration) (int, error)
	Failures(ctx context.Context, key string) (int, error)
	Clear(ctx context.Context, key string) error
}

type Service struct {
	store       Store
	maxFailures int
	window      time.Duration
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New builds a lockout service. maxFailures of 0 disables lockout.
func New(store Store, maxFailures int, window time.Duration, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("lockout store is required")
	}
	if maxFailures < 0 {
		return nil, errors.New("max failures must not be negative")
	}
	if maxFailures > 0 && window <= 0 {
		return nil, errors.New("lockout window must be positive")
	}
	svc := &Service{
		store:       store,
		maxFailures: maxFailures,
		window:      window,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Enabled reports whether failures are counted at all.
func (s *Service) Enabled() bool {
	return s.maxFailures > 0
}

// Check fails with CodeTooManyRequests while officerID is locked.
func (s *Service) Check(ctx context.Context, officerID string) error {
	if !s.Enabled() {
		return nil
	}
	n, err := s.store.Failures(ctx, key(officerID))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read login failures")
	}
	if n >= s.maxFailures {
		return dErrors.New(dErrors.CodeTooManyRequests, "too many failed login attempts, try again later")
	}
	return nil
}

// RecordFailure counts one failed attempt and reports whether it locked the officer id.
func (s *Service) RecordFailure(ctx context.Context, officerID string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	n, err := s.store.RecordFailure(ctx, key(officerID), s.window)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record login failure")
	}
	locked := n == s.maxFailures
	if locked {
		s.logger.WarnContext(ctx, "officer login locked",
			"officer_id", officerID,
			"failures", n,
			"window", s.window,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return locked, nil
}

// Clear resets the counter after a successful login.
func (s *Service) Clear(ctx context.Context, officerID string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.store.Clear(ctx, key(officerID)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear login failures")
	}
	return nil
}

func key(officerID string) string {
	return keyPrefix + officerID
}
