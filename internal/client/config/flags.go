package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/memorymap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so the config file flag does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-f", "-d", "-u", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (sqlite, postgres, s3, memory)")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.PostgresDSN, "d", cfg.PostgresDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.ShareBaseURL, "u", cfg.ShareBaseURL, "base URL for share links")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone for the timeline")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
