package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadFile_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().EngineName, cfg.EngineName)
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine_name":"leela","port":9100}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "leela", cfg.EngineName)
	assert.Equal(t, 9100, cfg.Port)
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("CHESSPAL_ENGINE_DEPTH", "20")
	t.Setenv("MCP_PORT", "9999")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, 20, cfg.EngineDepth)
	assert.Equal(t, 9999, cfg.Port)
}

func TestValidate_InvalidLogLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Environment = "production"
	cfg.LogLevel = "VERBOSE"

	require.NoError(t, Validate(cfg))
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestValidate_InvalidEnvironmentFallsBackToDevelopment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Environment = "staging"

	require.NoError(t, Validate(cfg))
	assert.Equal(t, string(EnvironmentDevelopment), cfg.Environment)
}

func TestValidate_RejectsOutOfRangePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 70000

	err := Validate(cfg)
	require.Error(t, err)
}

func TestValidate_RejectsOutOfRangeDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EngineDepth = 31

	err := Validate(cfg)
	require.Error(t, err)
}

func TestValidate_RejectsOutOfRangeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EngineTimeoutMS = 99

	err := Validate(cfg)
	require.Error(t, err)
}
