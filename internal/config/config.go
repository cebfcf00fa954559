// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/jsonclass/internal/classgen"
	"github.com/usestring/jsonclass/internal/logging"
	"github.com/usestring/jsonclass/internal/render"
)

// Limit defaults
const (
	DefaultResultCacheItems = 256
	DefaultMaxSampleBytes   = 8 << 20
)

// Config holds configuration shared by the CLI and the MCP server.
type Config struct {
	// Generation
	MaxDepth int    // JSONCLASS_MAX_DEPTH, default 1000
	RootName string // JSONCLASS_ROOT_NAME, default "Root"
	Package  string // JSONCLASS_PACKAGE, default "model"
	Banner   bool   // JSONCLASS_BANNER, default false

	// MCP server limits
	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 256
	MaxSampleBytes      int // MAX_SAMPLE_BYTES, default 8MiB

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		MaxDepth: getEnvInt("JSONCLASS_MAX_DEPTH", classgen.DefaultMaxDepth),
		RootName: getEnvString("JSONCLASS_ROOT_NAME", classgen.DefaultRootName),
		Package:  getEnvString("JSONCLASS_PACKAGE", render.DefaultPackage),
		Banner:   getEnvBool("JSONCLASS_BANNER", false),

		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", DefaultResultCacheItems),
		MaxSampleBytes:      getEnvInt("MAX_SAMPLE_BYTES", DefaultMaxSampleBytes),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Logging returns the logging section as a logging.Config.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
