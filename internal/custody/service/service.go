// Package service holds the custody use cases: record CRUD for every resource
// and the officer signup and login flow. Services translate store sentinels into
// domain errors, stamp request time, and emit audit events and metrics.
package service

import (
	"context"
	"log/slog"
	"time"

	"custody/internal/custody/metrics"
	"custody/internal/docstore"
	"custody/pkg/domain"
	"custody/pkg/platform/audit"
)

// Record is implemented by the custody entity models.
type Record[T any] interface {
	Validate() error
	// BusinessKey is the value the id is derived from, or empty when the store assigns it.
	BusinessKey() string
	RecordID() domain.EntityID
	Prepare(id domain.EntityID, now time.Time) T
}

// Patch is implemented by the partial update models.
type Patch[U any] interface {
	Validate() error
	IsEmpty() bool
	Touch(now time.Time) U
}

// Repository is the subset of store.Repository the services use.
type Repository[T any] interface {
	Create(ctx context.Context, record T) (*T, error)
	FindByID(ctx context.Context, id domain.EntityID) (*T, error)
	FindOne(ctx context.Context, filter docstore.Filter) (*T, error)
	List(ctx context.Context, limit int) ([]T, error)
	ListBy(ctx context.Context, filter docstore.Filter, limit int) ([]T, error)
	Update(ctx context.Context, id domain.EntityID, patch any) (*T, error)
	UpdateOne(ctx context.Context, filter docstore.Filter, patch any) (*T, error)
	Delete(ctx context.Context, id domain.EntityID) error
	DeleteOne(ctx context.Context, filter docstore.Filter) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Lockout guards officer logins.
type Lockout interface {
	Check(ctx context.Context, officerID string) error
	RecordFailure(ctx context.Context, officerID string) (bool, error)
	Clear(ctx context.Context, officerID string) error
}

type options struct {
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	lockout        Lockout
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(o *options) {
		o.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLockout enables failed-login lockout for the officer service.
func WithLockout(l Lockout) Option {
	return func(o *options) {
		o.lockout = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) emit(ctx context.Context, resource domain.Resource, action audit.Action, entityID string) {
	if o.auditPublisher == nil {
		return
	}
	o.auditPublisher.Emit(ctx, audit.Event{
		Resource: resource.String(),
		Action:   action,
		EntityID: entityID,
	})
}
