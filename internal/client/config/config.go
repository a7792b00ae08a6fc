package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
	"github.com/dmitrijs2005/memorymap/internal/repositories/repomanager"
)

// Config holds runtime settings for the memorymap CLI.
//
// Fields:
//   - StorageBackend: sqlite, postgres, s3 or memory.
//   - SQLitePath / PostgresDSN / S3*: settings of the selected backend.
//   - ShareBaseURL: prefix of generated share links.
//   - SessionSecret / SessionTTL: signing key and lifetime of login sessions.
//   - TimeZone: IANA zone used to bucket the timeline ("Local" by default).
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StorageBackend string
	SQLitePath     string
	PostgresDSN    string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3Prefix       string
	S3AccessKey    string
	S3SecretKey    string

	ShareBaseURL  string
	SessionSecret string
	SessionTTL    time.Duration
	TimeZone      string
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = string(repomanager.BackendSQLite)
	c.SQLitePath = "data/memories.db"
	c.S3Region = "us-east-1"
	c.ShareBaseURL = "http://localhost:8080"
	c.SessionSecret = "change-me"
	c.SessionTTL = 12 * time.Hour
	c.TimeZone = "Local"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
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

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Level maps LogLevel to a slog level, defaulting to WARN.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return l
}
