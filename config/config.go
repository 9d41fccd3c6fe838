package config

import (
	"os"
	"strconv"
	"time"

	"github.com/wiresock/netwatch/emit"
)

// defaultConnInfo is used only when AWS_RDS_CONNINFO is unset or empty, so a
// developer checkout runs against a local Postgres without any setup.
const defaultConnInfo = "host=localhost port=5432 user=netwatch dbname=netwatch sslmode=disable"

const (
	defaultSnaplen        = int32(65536)
	defaultCaptureTimeout = 1 * time.Second
)

// Config holds everything cmd/netwatch needs after .env/environment
// loading, before it prompts for an interface.
type Config struct {
	DBConnInfo    string
	DBEnabled     bool
	JSONPath      string
	LogLevel      emit.Level
	LogFilePath   string // empty disables the secondary log file
	Snaplen       int32
	CaptureWindow time.Duration
}

// Load reads NETWATCH_* and AWS_RDS_CONNINFO from the process environment,
// applying defaults for anything unset. Call LoadEnv first to populate the
// environment from a .env file.
func Load() Config {
	connInfo := os.Getenv("AWS_RDS_CONNINFO")
	if connInfo == "" {
		connInfo = defaultConnInfo
	}

	cfg := Config{
		DBConnInfo:    connInfo,
		DBEnabled:     true,
		JSONPath:      envOr("NETWATCH_STATS_PATH", "netwatch_stats.json"),
		LogLevel:      emit.ParseLevel(envOr("NETWATCH_LOG_LEVEL", "INFO")),
		LogFilePath:   os.Getenv("NETWATCH_LOG_FILE"),
		Snaplen:       defaultSnaplen,
		CaptureWindow: defaultCaptureTimeout,
	}

	if v := os.Getenv("NETWATCH_SNAPLEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Snaplen = int32(n)
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
