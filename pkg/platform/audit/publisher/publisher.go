// Package publisher buffers audit events in memory and delivers them to an
// audit.Store from a background worker, so request handling never waits on the
// audit sink.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"custody/pkg/platform/audit"
	"custody/pkg/platform/audit/worker"
	"custody/pkg/requestcontext"
)

// Metrics tracks audit delivery.
type Metrics struct {
	Emitted   prometheus.Counter
	Dropped   prometheus.Counter
	Delivered prometheus.Counter
	Failures  prometheus.Counter
}

// NewMetrics registers the audit metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Emitted: f.NewCounter(prometheus.CounterOpts{
			Name: "custody_audit_events_emitted_total",
			Help: "Total number of audit events accepted into the buffer",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "custody_audit_events_dropped_total",
			Help: "Total number of audit events dropped (buffer overflow or open circuit)",
		}),
		Delivered: f.NewCounter(prometheus.CounterOpts{
			Name: "custody_audit_events_delivered_total",
			Help: "Total number of audit events written to the audit store",
		}),
		Failures: f.NewCounter(prometheus.CounterOpts{
			Name: "custody_audit_delivery_failures_total",
			Help: "Total number of failed audit batch deliveries",
		}),
	}
}

// Publisher is safe for concurrent use.
type Publisher struct {
	store   audit.Store
	buffer  *RingBuffer
	breaker *breaker
	logger  *slog.Logger
	metrics *Metrics
	wake    chan struct{}
	worker  *worker.Worker
}

type config struct {
	bufferSize       int
	batchSize        int
	interval         time.Duration
	failureThreshold int
	cooldown         time.Duration
	logger           *slog.Logger
	metrics          *Metrics
}

// Option configures a Publisher.
type Option func(*config)

// WithBufferSize bounds the number of undelivered events kept in memory.
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}

// WithBatchSize sets how many events go to the store per call.
func WithBatchSize(n int) Option {
	return func(c *config) { c.batchSize = n }
}

// WithFlushInterval sets how often the worker drains without being woken.
func WithFlushInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// WithCircuitBreaker sets how many consecutive store failures open the circuit
// and how long it stays open.
func WithCircuitBreaker(threshold int, cooldown time.Duration) Option {
	return func(c *config) {
		c.failureThreshold = threshold
		c.cooldown = cooldown
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// New constructs a Publisher. Call Run to start delivery.
func New(store audit.Store, opts ...Option) *Publisher {
	cfg := &config{bufferSize: 1024, batchSize: 100, interval: time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	p := &Publisher{
		store:   store,
		buffer:  NewRingBuffer(cfg.bufferSize),
		breaker: newBreaker(cfg.failureThreshold, cfg.cooldown),
		logger:  cfg.logger,
		metrics: cfg.metrics,
		wake:    make(chan struct{}, 1),
	}
	p.worker = worker.NewWorker(p.buffer, p.deliver, p.wake, cfg.interval, cfg.batchSize)
	return p
}

// Emit enriches the event from the request context and buffers it. It never
// blocks; when the buffer is full the oldest event is dropped.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.OfficerID(ctx)
	}

	if p.buffer.Enqueue(event) {
		p.incDropped(1)
	}
	if p.metrics != nil {
		p.metrics.Emitted.Inc()
	}

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run delivers buffered events until ctx is done, then flushes what is left.
func (p *Publisher) Run(ctx context.Context) error {
	return p.worker.Run(ctx)
}

// Flush synchronously delivers everything currently buffered.
func (p *Publisher) Flush(ctx context.Context) {
	p.worker.Drain(ctx)
}

// Pending returns the number of undelivered events.
func (p *Publisher) Pending() int {
	return p.buffer.Len()
}

func (p *Publisher) deliver(ctx context.Context, batch []audit.Event) {
	if !p.breaker.allow() {
		p.incDropped(len(batch))
		return
	}
	if err := p.store.Append(ctx, batch...); err != nil {
		p.breaker.failure()
		p.incDropped(len(batch))
		if p.metrics != nil {
			p.metrics.Failures.Inc()
		}
		p.logger.ErrorContext(ctx, "failed to deliver audit events",
			"count", len(batch),
			"circuit_open", p.breaker.open(),
			"error", err,
		)
		return
	}
	p.breaker.success()
	if p.metrics != nil {
		p.metrics.Delivered.Add(float64(len(batch)))
	}
}

func (p *Publisher) incDropped(n int) {
	if p.metrics != nil {
		p.metrics.Dropped.Add(float64(n))
	}
}
