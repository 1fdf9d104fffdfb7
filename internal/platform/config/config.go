package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "custody/pkg/platform/strings"
)

// Config captures process-level configuration.
type Config struct {
	Server  Server
	Log     Log
	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Lockout LockoutConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

// MongoConfig selects the document store. An empty URI keeps records in memory.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig configures the lockout counter store. An empty URL keeps counters in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. No brokers keeps audit events in memory.
type KafkaConfig struct {
	Brokers          []string
	AuditTopic       string
	AuditBufferSize  int
	TopicPartitions  int32
	TopicReplication int16
}

// LockoutConfig bounds failed officer logins. Lockout is opt-in: MaxFailures of 0,
// the default, disables it.
type LockoutConfig struct {
	MaxFailures int
	Window      time.Duration
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	p := parser{}
	cfg := Config{
		Server: Server{
			Addr:            p.str("CUSTODY_ADDR", ":8080"),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: Log{
			Level:  strings.ToLower(p.str("LOG_LEVEL", "info")),
			Format: strings.ToLower(p.str("LOG_FORMAT", "json")),
		},
		Mongo: MongoConfig{
			URI:            p.str("MONGODB_URI", ""),
			Database:       p.str("MONGODB_DATABASE", "test_db"),
			ConnectTimeout: p.duration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:          p.list("KAFKA_BROKERS"),
			AuditTopic:       p.str("AUDIT_TOPIC", "custody.audit"),
			AuditBufferSize:  p.integer("AUDIT_BUFFER_SIZE", 1024),
			TopicPartitions:  int32(p.integer("AUDIT_TOPIC_PARTITIONS", 3)),
			TopicReplication: int16(p.integer("AUDIT_TOPIC_REPLICATION", 1)),
		},
		Lockout: LockoutConfig{
			MaxFailures: p.integer("LOGIN_MAX_FAILURES", 0),
			Window:      p.duration("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, cfg.Validate()
}

// Validate rejects values that parse but make no sense.
func (c Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", c.Log.Format))
	}
	if c.Mongo.URI != "" && c.Mongo.Database == "" {
		errs = append(errs, errors.New("MONGODB_DATABASE: required when MONGODB_URI is set"))
	}
	if c.Mongo.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("MONGODB_CONNECT_TIMEOUT: must be positive"))
	}
	if c.Kafka.AuditBufferSize <= 0 {
		errs = append(errs, errors.New("AUDIT_BUFFER_SIZE: must be positive"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		errs = append(errs, errors.New("AUDIT_TOPIC: required when KAFKA_BROKERS is set"))
	}
	if c.Lockout.MaxFailures < 0 {
		errs = append(errs, errors.New("LOGIN_MAX_FAILURES: must not be negative"))
	}
	if c.Lockout.MaxFailures > 0 && c.Lockout.Window <= 0 {
		errs = append(errs, errors.New("LOGIN_LOCKOUT_WINDOW: must be positive"))
	}
	return errors.Join(errs...)
}

// parser records the first malformed variable.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

// list splits a comma separated value, dropping blanks and repeats.
func (p *parser) list(key string) []string {
	return pstrings.DedupeAndTrim(strings.Split(p.str(key, ""), ","))
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
