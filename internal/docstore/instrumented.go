package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
)

var tracer = otel.Tracer("custody/internal/docstore")

// Metrics records document store latency per collection and operation.
type Metrics struct {
	OperationDuration *prometheus.HistogramVec
}

// NewMetrics registers the store metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		OperationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custody_store_operation_duration_seconds",
			Help:    "Duration of document store operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"collection", "op"}),
	}
}

func (m *Metrics) observe(collection, op string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

// Instrument wraps every collection of db with tracing spans and latency metrics.
// metrics may be nil.
func Instrument(db Database, metrics *Metrics) Database {
	return &instrumentedDatabase{Database: db, metrics: metrics}
}

type instrumentedDatabase struct {
	Database
	metrics *Metrics
}

func (d *instrumentedDatabase) Collection(name string) Collection {
	return &instrumented{next: d.Database.Collection(name), metrics: d.metrics}
}

type instrumented struct {
	next    Collection
	metrics *Metrics
}

func (c *instrumented) start(ctx context.Context, op string) (context.Context, trace.Span, func(error)) {
	begin := time.Now()
	ctx, span := tracer.Start(ctx, "docstore."+op, trace.WithAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection", c.next.Name()),
		attribute.String("db.operation", op),
	))
	return ctx, span, func(err error) {
		// not-found is an expected outcome, not a span error
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.metrics.observe(c.next.Name(), op, begin)
	}
}

func (c *instrumented) Name() string {
	return c.next.Name()
}

func (c *instrumented) InsertOne(ctx context.Context, doc any) (id domain.EntityID, err error) {
	ctx, _, done := c.start(ctx, "insert_one")
	defer func() { done(err) }()
	return c.next.InsertOne(ctx, doc)
}

func (c *instrumented) FindOne(ctx context.Context, filter Filter) (raw bson.Raw, err error) {
	ctx, _, done := c.start(ctx, "find_one")
	defer func() { done(err) }()
	return c.next.FindOne(ctx, filter)
}

func (c *instrumented) Find(ctx context.Context, filter Filter, limit int64) (docs []bson.Raw, err error) {
	ctx, span, done := c.start(ctx, "find")
	defer func() {
		span.SetAttributes(attribute.Int("db.result_count", len(docs)))
		done(err)
	}()
	return c.next.Find(ctx, filter, limit)
}

func (c *instrumented) FindOneAndSet(ctx context.Context, filter Filter, set bson.D) (raw bson.Raw, err error) {
	ctx, _, done := c.start(ctx, "find_one_and_update")
	defer func() { done(err) }()
	return c.next.FindOneAndSet(ctx, filter, set)
}

func (c *instrumented) DeleteOne(ctx context.Context, filter Filter) (err error) {
	ctx, _, done := c.start(ctx, "delete_one")
	defer func() { done(err) }()
	return c.next.DeleteOne(ctx, filter)
}

func (c *instrumented) EnsureIndex(ctx context.Context, field string) (err error) {
	ctx, _, done := c.start(ctx, "create_index")
	defer func() { done(err) }()
	return c.next.EnsureIndex(ctx, field)
}
