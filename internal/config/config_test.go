package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/oaserrors"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oasdocs.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, LayoutSidebar, cfg.Layout)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.ReloadInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Metrics)
	assert.False(t, cfg.HideInternal)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeTOML(t, `
addr = "127.0.0.1:9000"
source = "openapi.yaml"
layout = "stacked"
base_path = "/docs"
hide_internal = true
metrics = false
cache_ttl = "5m"
max_ref_depth = 8
`)

	cfg, err := Load(path, env(map[string]string{
		"OASDOCS_LAYOUT":       "responsive",
		"OASDOCS_HIDE_SCHEMAS": "true",
		"OASDOCS_CACHE_SIZE":   "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "openapi.yaml", cfg.Source)
	assert.Equal(t, LayoutResponsive, cfg.Layout, "environment wins over file")
	assert.Equal(t, "/docs", cfg.BasePath)
	assert.True(t, cfg.HideInternal)
	assert.True(t, cfg.HideSchemas)
	assert.False(t, cfg.Metrics, "false in the file overrides a true default")
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.MaxRefDepth)
	assert.Equal(t, 4, cfg.CacheSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		option string
	}{
		{"layout", `layout = "grid"`, nil, "layout"},
		{"base path", `base_path = "docs"`, nil, "base_path"},
		{"addr", "", map[string]string{"OASDOCS_ADDR": "not an address"}, "addr"},
		{"logo", `logo = "logo.png"`, nil, "logo"},
		{"log level", "", map[string]string{"OASDOCS_LOG_LEVEL": "trace"}, "log_level"},
		{"cache size", `cache_size = 0`, nil, "cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeTOML(t, tt.file)
			}
			_, err := Load(path, env(tt.env))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cfgErr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeTOML(t, `colour = "blue"`), env(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestLoad_BadFile(t *testing.T) {
	_, err := Load(writeTOML(t, `addr = `), env(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), env(nil))
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestDecode_WeakTyping(t *testing.T) {
	values := Defaults()
	values["outer_router"] = "1"
	values["max_ref_depth"] = "12"
	values["shutdown_timeout"] = "2s"

	cfg, err := Decode(values)
	require.NoError(t, err)
	assert.True(t, cfg.OuterRouter)
	assert.Equal(t, 12, cfg.MaxRefDepth)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(Defaults()))
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "base_path")
}
