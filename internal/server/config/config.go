// Package config handles configuration for the share server, including
// defaults, a JSON or YAML file overlay and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
	"github.com/dmitrijs2005/memorymap/internal/repositories/repomanager"
)

// Config holds runtime settings for the memorymap share server.
//
// Fields:
//   - HTTPAddr: bind address of the share API.
//   - GRPCAddr: bind address of the gRPC health service.
//   - StorageBackend and the SQLite / Postgres / S3 fields: the store to read.
//   - CacheSize / CacheTTL: resolved share view cache.
//   - ShutdownTimeout: grace period for in-flight requests.
type Config struct {
	HTTPAddr string
	GRPCAddr string

	StorageBackend string
	SQLitePath     string
	PostgresDSN    string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3Prefix       string
	S3AccessKey    string
	S3SecretKey    string

	CacheSize       int
	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
	TimeZone        string
	LogLevel        string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.StorageBackend = string(repomanager.BackendSQLite)
	c.SQLitePath = "data/memories.db"
	c.S3Region = "us-east-1"
	c.CacheSize = 256
	c.CacheTTL = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.TimeZone = "UTC"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

// StorageOptions converts the storage fields for repomanager.Open.
func (c *Config) StorageOptions() (repomanager.Options, error) {
	b, err := repomanager.ParseBackend(c.StorageBackend)
	if err != nil {
		return repomanager.Options{}, err
	}
	return repomanager.Options{
		Backend:     b,
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
		S3: kv.S3Options{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		},
	}, nil
}

// Location resolves TimeZone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Level maps LogLevel to a slog level, defaulting to INFO.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}
