package config

import (
	"context"
	"time"
)

type contextKey struct{}

// WithContext returns a new context carrying the given Config.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the Config from the context.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}

// Config holds all configuration for the board service.
type Config struct {
	// Database
	DBURL  string
	DBName string

	// Run datastore migrations on startup.
	DatastoreMigrateAtStart bool

	// Datastore backend type
	DatastoreType string // "mongo"

	// DB pool
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Staleness sweep: cron spec evaluated in SweepTimezone; topics of a
	// time-limited kind whose update timestamp is older than SweepWindow
	// are deactivated on each tick.
	SweepSpec     string
	SweepTimezone string
	SweepWindow   time.Duration

	// Server
	Port      int
	AccessLog bool

	// MetricsLabels is a comma-separated list of key=value pairs added as
	// constant labels to all Prometheus metrics.
	MetricsLabels string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBURL:                   "mongodb://localhost:27017",
		DBName:                  "board_service",
		DatastoreType:           "mongo",
		DatastoreMigrateAtStart: true,
		DBMaxOpenConns:          25,
		DBMaxIdleConns:          5,
		SweepSpec:               "0 * * * *",
		SweepTimezone:           "Asia/Tokyo",
		SweepWindow:             24 * time.Hour,
		Port:                    8080,
		MetricsLabels:           "service=board-service",
	}
}

// SweepLocation resolves the configured sweep timezone.
func (c *Config) SweepLocation() (*time.Location, error) {
	return time.LoadLocation(c.SweepTimezone)
}
