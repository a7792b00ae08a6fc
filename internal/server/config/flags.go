package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-s string   storage backend (sqlite, postgres, s3, memory)
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-n int      view cache size, entries
//	-t int      view cache TTL, seconds
//
// Notes:
//   - os.Args is first filtered with flagx.FilterArgs so the config file
//     flag does not collide with this flag set.
//   - The cache TTL is accepted as an integer number of seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s", "-f", "-d", "-n", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "SQLite database file")
	fs.StringVar(&config.PostgresDSN, "d", config.PostgresDSN, "PostgreSQL DSN")
	fs.IntVar(&config.CacheSize, "n", config.CacheSize, "view cache size")

	cacheTTL := fs.Int("t", int(config.CacheTTL.Seconds()), "view cache TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
}
