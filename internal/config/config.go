package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is canopy's runtime configuration. Environment variables (optionally
// from a .env file) provide it; command-line flags override it.
type Config struct {
	LogLevel  string // CANOPY_LOG_LEVEL
	LogFormat string // CANOPY_LOG_FORMAT: json or console
	Selector  string // CANOPY_SELECTOR: JSONPath for JSON sources
	CacheSize int    // CANOPY_CACHE_SIZE: record sets kept by the MCP server
	Validate  bool   // CANOPY_VALIDATE: check forest structure before queries
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "console",
		Selector:  "$[*]",
		CacheSize: 16,
		Validate:  true,
	}
}

// Load reads .env from the working directory when present and then the
// environment. Malformed numeric or boolean values keep their defaults.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()

	if v := strings.TrimSpace(getenv("CANOPY_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("CANOPY_LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(getenv("CANOPY_SELECTOR")); v != "" {
		cfg.Selector = v
	}
	if v := strings.TrimSpace(getenv("CANOPY_CACHE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}
	if v := strings.TrimSpace(getenv("CANOPY_VALIDATE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Validate = b
		}
	}
	return cfg
}
