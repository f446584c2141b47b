package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
)

// isolate points the user config at an empty directory and clears the
// NATIVEBRIDGE_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, name := range []string{EnvLibraryPath, EnvPermissionEnabled, EnvManglePrefix, EnvLogLevel, EnvSymbolCacheSize} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return xdg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Empty(t, cfg.LibraryPaths)
	assert.False(t, cfg.Permission.Enabled)
	assert.Equal(t, "ETS_", cfg.Mangle.Prefix)
	assert.Equal(t, 1024, cfg.Symbols.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestGetUserConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "nativebridge", "config.yaml"), GetUserConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg", "nativebridge"), GetUserConfigDir())
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	xdg := isolate(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(xdg, "nativebridge", "config.yaml"), `
library_paths: ["/user/lib"]
mangle:
  prefix: "USR_"
logging:
  level: warn
`)
	writeFile(t, filepath.Join(dir, ProjectFileYAML), `
library_paths: ["/project/lib", "/project/lib64"]
logging:
  level: debug
`)
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"/project/lib", "/project/lib64"}, cfg.LibraryPaths)
	assert.Equal(t, "USR_", cfg.Mangle.Prefix)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_YMLFallback(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileYML), "symbols:\n  cache_size: 16\n")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Symbols.CacheSize)
}

func TestLoad_YAMLPreferredOverYML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileYAML), "symbols:\n  cache_size: 8\n")
	writeFile(t, filepath.Join(dir, ProjectFileYML), "symbols:\n  cache_size: 16\n")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Symbols.CacheSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLibraryPath, "/a:/b::/c")
	t.Setenv(EnvPermissionEnabled, "true")
	t.Setenv(EnvManglePrefix, "ANI_")
	t.Setenv(EnvSymbolCacheSize, "0")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b", "/c"}, cfg.LibraryPaths)
	assert.True(t, cfg.Permission.Enabled)
	assert.Equal(t, "ANI_", cfg.Mangle.Prefix)
	assert.Equal(t, 0, cfg.Symbols.CacheSize)
}

func TestLoad_EnvDisablesPermission(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileYAML), "permission:\n  enabled: true\n")
	t.Setenv(EnvPermissionEnabled, "0")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.False(t, cfg.Permission.Enabled)
}

func TestLoad_EmptyLibraryPathEnvClearsList(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileYAML), "library_paths: [\"/x\"]\n")
	t.Setenv(EnvLibraryPath, "")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Empty(t, cfg.LibraryPaths)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "permission", key: EnvPermissionEnabled, value: "maybe"},
		{name: "cache size", key: EnvSymbolCacheSize, value: "lots"},
		{name: "negative cache size", key: EnvSymbolCacheSize, value: "-1"},
		{name: "log level", key: EnvLogLevel, value: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(t.TempDir())

			require.Error(t, err)
			assert.Equal(t, bridgeerrors.ErrCodeConfigInvalid, bridgeerrors.GetCode(err))
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileYAML), "library_paths: [unterminated\n")

	_, err := Load(dir)

	require.Error(t, err)
	assert.Equal(t, bridgeerrors.CategoryConfig, bridgeerrors.GetCategory(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty prefix", mutate: func(c *Config) { c.Mangle.Prefix = "" }, wantErr: "mangle.prefix"},
		{name: "negative cache", mutate: func(c *Config) { c.Symbols.CacheSize = -5 }, wantErr: "cache_size"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "logging.level"},
		{name: "level is case insensitive", mutate: func(c *Config) { c.Logging.Level = "WARN" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	writeFile(t, path, "library_paths: [\"/opt/lib\"]\n")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/lib"}, cfg.LibraryPaths)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	var be *bridgeerrors.BridgeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, bridgeerrors.ErrCodeConfigNotFound, be.Code)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := NewConfig()
	cfg.LibraryPaths = []string{"/system/lib64"}
	cfg.Permission.Enabled = true

	require.NoError(t, cfg.WriteYAML(path))
	loaded, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSplitPathList(t *testing.T) {
	assert.Equal(t, []string{}, SplitPathList(""))
	assert.Equal(t, []string{"/a"}, SplitPathList("/a"))
	assert.Equal(t, []string{"/a", "/b"}, SplitPathList(" /a : /b :"))
}
