package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"custody/internal/custody"
	"custody/internal/custody/lockout"
	custodymetrics "custody/internal/custody/metrics"
	"custody/internal/custody/service"
	"custody/internal/custody/store"
	"custody/internal/docstore"
	httpapi "custody/internal/http"
	"custody/internal/platform/config"
	"custody/internal/platform/httpserver"
	"custody/internal/platform/kafka"
	"custody/internal/platform/logger"
	"custody/internal/platform/metrics"
	"custody/internal/platform/mongo"
	"custody/internal/platform/redis"
	"custody/pkg/platform/audit"
	"custody/pkg/platform/audit/publisher"
	kafkastore "custody/pkg/platform/audit/store/kafka"
	auditmemory "custody/pkg/platform/audit/store/memory"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("custody server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	db, closeDB, err := openDatabase(ctx, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer closeDB()
	db = docstore.Instrument(db, docstore.NewMetrics(reg))

	if err := docstore.EnsureIndexes(ctx, db, store.Indexes); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	auditStore, closeAudit, err := openAuditStore(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	auditPublisher := publisher.New(auditStore,
		publisher.WithBufferSize(cfg.Kafka.AuditBufferSize),
		publisher.WithCircuitBreaker(5, 30*time.Second),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
	)

	serviceOpts := []service.Option{
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(custodymetrics.New(reg)),
	}
	if cfg.Lockout.MaxFailures > 0 {
		lockoutStore, closeLockout, err := openLockoutStore(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer closeLockout()
		locks, err := lockout.New(lockoutStore, cfg.Lockout.MaxFailures, cfg.Lockout.Window, lockout.WithLogger(log))
		if err != nil {
			return fmt.Errorf("configure login lockout: %w", err)
		}
		log.Info("login lockout enabled", "max_failures", cfg.Lockout.MaxFailures, "window", cfg.Lockout.Window)
		serviceOpts = append(serviceOpts, service.WithLockout(locks))
	}

	module := custody.New(db, log, serviceOpts...)

	router := httpapi.NewRouter(httpapi.Dependencies{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Store:    db,
		Routes:   []httpapi.Registrar{module},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditPublisher.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting custody server", "addr", cfg.Server.Addr)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout)
	})

	err = g.Wait()

	// requests finishing during shutdown may emit after the worker stopped
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	auditPublisher.Flush(flushCtx)
	log.Info("custody server shut down", "pending_audit_events", auditPublisher.Pending())
	return err
}

func openDatabase(ctx context.Context, cfg config.MongoConfig, log *slog.Logger) (docstore.Database, func(), error) {
	client, err := mongo.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("MONGODB_URI not set, records are kept in memory")
		return docstore.NewMemoryDatabase(), func() {}, nil
	}
	log.Info("connected to mongodb", "database", cfg.Database)
	return docstore.NewMongoDatabase(client.Database), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			log.Error("failed to disconnect mongodb", "error", err)
		}
	}, nil
}

func openAuditStore(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Store, func(), error) {
	client, err := kafka.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("KAFKA_BROKERS not set, audit events are kept in memory")
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	log.Info("publishing audit events to kafka", "topic", cfg.AuditTopic)
	return kafkastore.New(client, cfg.AuditTopic), client.Close, nil
}

func openLockoutStore(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (lockout.Store, func(), error) {
	client, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("REDIS_URL not set, login failures are counted in memory")
		return lockout.NewMemoryStore(), func() {}, nil
	}
	return lockout.NewRedisStore(client.Client), func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close redis", "error", err)
		}
	}, nil
}
