package config

import (
	"github.com/dmitrijs2005/memorymap/internal/configx"
	"github.com/dmitrijs2005/memorymap/internal/flagx"
	"github.com/dmitrijs2005/memorymap/internal/timex"
)

// FileConfig is the DTO for JSON and YAML config files.
type FileConfig struct {
	StorageBackend string `json:"storage_backend" yaml:"storage_backend"`
	SQLitePath     string `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN    string `json:"postgres_dsn" yaml:"postgres_dsn"`

	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix"`
	S3AccessKey    string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key" yaml:"s3_secret_key"`

	ShareBaseURL  string         `json:"share_base_url" yaml:"share_base_url"`
	SessionSecret string         `json:"session_secret" yaml:"session_secret"`
	SessionTTL    timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	TimeZone      string         `json:"time_zone" yaml:"time_zone"`
	LogLevel      string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c / -config. It panics on
// read or parse errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	fc := FileConfig{
		StorageBackend: cfg.StorageBackend,
		SQLitePath:     cfg.SQLitePath,
		PostgresDSN:    cfg.PostgresDSN,
		S3Bucket:       cfg.S3Bucket,
		S3Region:       cfg.S3Region,
		S3BaseEndpoint: cfg.S3BaseEndpoint,
		S3Prefix:       cfg.S3Prefix,
		S3AccessKey:    cfg.S3AccessKey,
		S3SecretKey:    cfg.S3SecretKey,
		ShareBaseURL:   cfg.ShareBaseURL,
		SessionSecret:  cfg.SessionSecret,
		SessionTTL:     timex.Duration{Duration: cfg.SessionTTL},
		TimeZone:       cfg.TimeZone,
		LogLevel:       cfg.LogLevel,
	}

	if err := configx.DecodeFile(path, &fc); err != nil {
		panic(err)
	}

	cfg.StorageBackend = fc.StorageBackend
	cfg.SQLitePath = fc.SQLitePath
	cfg.PostgresDSN = fc.PostgresDSN
	cfg.S3Bucket = fc.S3Bucket
	cfg.S3Region = fc.S3Region
	cfg.S3BaseEndpoint = fc.S3BaseEndpoint
	cfg.S3Prefix = fc.S3Prefix
	cfg.S3AccessKey = fc.S3AccessKey
	cfg.S3SecretKey = fc.S3SecretKey
	cfg.ShareBaseURL = fc.ShareBaseURL
	cfg.SessionSecret = fc.SessionSecret
	cfg.SessionTTL = fc.SessionTTL.Duration
	cfg.TimeZone = fc.TimeZone
	cfg.LogLevel = fc.LogLevel
}
