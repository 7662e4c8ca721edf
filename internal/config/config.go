// Package config loads and validates the server's configuration:
// built-in defaults, then an optional JSON file, then environment
// variable overrides, in that order, following the teacher's
// config.Config / config.LoadConfig layering.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// Environment selects the logging preset and the LogLevel default.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Config holds every setting the engine supervisor and its transport
// need at startup (spec.md §6, expanded per SPEC_FULL.md §4).
type Config struct {
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	Host string `json:"host"`
	Port int    `json:"port"`

	EnginePath    string `json:"engine_path"`
	EngineName    string `json:"engine_name"`
	EngineVersion string `json:"engine_version"`
	OSTag         string `json:"os_tag"`
	BinaryName    string `json:"binary_name"`

	EngineDepth     int `json:"engine_depth"`
	EngineTimeoutMS int `json:"engine_timeout_ms"`

	EngineHashMB  int `json:"engine_hash_mb"`
	EngineThreads int `json:"engine_threads"`
}

// DefaultConfig returns the built-in baseline, matching the original
// Python Settings class defaults.
func DefaultConfig() *Config {
	return &Config{
		Environment: string(EnvironmentDevelopment),
		LogLevel:    "",

		Host: "127.0.0.1",
		Port: 9000,

		EnginePath:    "",
		EngineName:    "stockfish",
		EngineVersion: "17.1",
		OSTag:         defaultOSTag(),
		BinaryName:    "stockfish",

		EngineDepth:     10,
		EngineTimeoutMS: 1000,

		EngineHashMB:  128,
		EngineThreads: 1,
	}
}

// defaultOSTag mirrors the Python original's _get_default_os(): map the
// current GOOS the way spec.md §4.1 requires, leaving anything else
// empty for the resolver to reject at fallback-construction time.
func defaultOSTag() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "linux":
		return "linux"
	case "windows":
		return "windows"
	default:
		return ""
	}
}

// LoadFile overlays JSON-file settings onto the built-in defaults. A
// missing file is not an error; it simply means the defaults (plus any
// later environment overrides) apply.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg in place from environment variables, following
// the original's CHESSPAL_*/MCP_* naming.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ENVIRONMENT"); ok {
		cfg.Environment = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("MCP_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv("MCP_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_PATH"); ok {
		cfg.EnginePath = v
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_NAME"); ok {
		cfg.EngineName = v
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_VERSION"); ok {
		cfg.EngineVersion = v
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_OS"); ok {
		cfg.OSTag = v
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_BINARY"); ok {
		cfg.BinaryName = v
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_DEPTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EngineDepth = n
		}
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_TIMEOUT_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EngineTimeoutMS = n
		}
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_HASH_MB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EngineHashMB = n
		}
	}
	if v, ok := os.LookupEnv("CHESSPAL_ENGINE_THREADS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EngineThreads = n
		}
	}
}

var validLogLevels = map[string]bool{
	"DEBUG": true, "INFO": true, "WARNING": true, "ERROR": true, "CRITICAL": true,
}

// Validate checks range and enum constraints, normalizing Environment
// and LogLevel the way the original Settings validators do (unknown
// values fall back with a logged warning rather than failing), and
// rejects out-of-range numeric settings outright, matching spec.md §6's
// "out-of-range values are rejected at startup".
func Validate(cfg *Config) error {
	switch strings.ToLower(cfg.Environment) {
	case string(EnvironmentDevelopment), string(EnvironmentProduction):
		cfg.Environment = strings.ToLower(cfg.Environment)
	default:
		logging.Logger.Warnf("invalid environment %q, defaulting to %q", cfg.Environment, EnvironmentDevelopment)
		cfg.Environment = string(EnvironmentDevelopment)
	}

	if cfg.LogLevel == "" {
		if cfg.Environment == string(EnvironmentDevelopment) {
			cfg.LogLevel = "DEBUG"
		} else {
			cfg.LogLevel = "INFO"
		}
	}
	upper := strings.ToUpper(cfg.LogLevel)
	if !validLogLevels[upper] {
		logging.Logger.Warnf("invalid log_level %q, defaulting to INFO", cfg.LogLevel)
		upper = "INFO"
	}
	cfg.LogLevel = upper

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.EngineDepth < 1 || cfg.EngineDepth > 30 {
		return fmt.Errorf("engine_depth must be between 1 and 30, got %d", cfg.EngineDepth)
	}
	if cfg.EngineTimeoutMS < 100 || cfg.EngineTimeoutMS > 60000 {
		return fmt.Errorf("engine_timeout_ms must be between 100 and 60000, got %d", cfg.EngineTimeoutMS)
	}

	return nil
}

// Load runs the full defaults -> file -> env -> validate pipeline.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
