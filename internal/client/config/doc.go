// Package config loads runtime configuration for the memorymap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     Files ending in .yaml or .yml are YAML, anything else is JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: sqlite, postgres, s3 or memory
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-u string   base URL for share links
//	-z string   time zone for the timeline
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "12h"
// or integer nanoseconds:
//
//	storage_backend: sqlite
//	sqlite_path: data/memories.db
//	share_base_url: https://maps.example.com
//	session_ttl: 12h
//	time_zone: Europe/Riga
//
// Keys missing from the file keep their default values.
package config
