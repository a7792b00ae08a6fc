package config

import (
	"github.com/dmitrijs2005/memorymap/internal/configx"
	"github.com/dmitrijs2005/memorymap/internal/flagx"
	"github.com/dmitrijs2005/memorymap/internal/timex"
)

// FileConfig is the config file DTO. Duration fields use timex.Duration so
// both "30s" and integer nanoseconds are accepted.
type FileConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	GRPCAddr string `json:"grpc_addr" yaml:"grpc_addr"`

	StorageBackend string `json:"storage_backend" yaml:"storage_backend"`
	SQLitePath     string `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN    string `json:"postgres_dsn" yaml:"postgres_dsn"`

	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix"`
	S3AccessKey    string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key" yaml:"s3_secret_key"`

	CacheSize       int            `json:"cache_size" yaml:"cache_size"`
	CacheTTL        timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	TimeZone        string         `json:"time_zone" yaml:"time_zone"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c or -config into config. Keys missing
// from the file keep their current values. Unreadable or invalid files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	c := FileConfig{
		HTTPAddr:        config.HTTPAddr,
		GRPCAddr:        config.GRPCAddr,
		StorageBackend:  config.StorageBackend,
		SQLitePath:      config.SQLitePath,
		PostgresDSN:     config.PostgresDSN,
		S3Bucket:        config.S3Bucket,
		S3Region:        config.S3Region,
		S3BaseEndpoint:  config.S3BaseEndpoint,
		S3Prefix:        config.S3Prefix,
		S3AccessKey:     config.S3AccessKey,
		S3SecretKey:     config.S3SecretKey,
		CacheSize:       config.CacheSize,
		CacheTTL:        timex.Duration{Duration: config.CacheTTL},
		ShutdownTimeout: timex.Duration{Duration: config.ShutdownTimeout},
		TimeZone:        config.TimeZone,
		LogLevel:        config.LogLevel,
	}

	if err := configx.DecodeFile(path, &c); err != nil {
		panic(err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCAddr = c.GRPCAddr
	config.StorageBackend = c.StorageBackend
	config.SQLitePath = c.SQLitePath
	config.PostgresDSN = c.PostgresDSN
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3Prefix = c.S3Prefix
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.CacheSize = c.CacheSize
	config.CacheTTL = c.CacheTTL.Duration
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.TimeZone = c.TimeZone
	config.LogLevel = c.LogLevel
}
