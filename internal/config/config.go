// Package config loads bridge configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
)

// CurrentVersion is the schema version written by WriteYAML.
const CurrentVersion = 1

// Project file names, in lookup order.
const (
	ProjectFileYAML = ".nativebridge.yaml"
	ProjectFileYML  = ".nativebridge.yml"
)

// Environment variables consulted by Load.
const (
	EnvLibraryPath       = "NATIVEBRIDGE_LIBRARY_PATH"
	EnvPermissionEnabled = "NATIVEBRIDGE_PERMISSION_ENABLED"
	EnvManglePrefix      = "NATIVEBRIDGE_MANGLE_PREFIX"
	EnvLogLevel          = "NATIVEBRIDGE_LOG_LEVEL"
	EnvSymbolCacheSize   = "NATIVEBRIDGE_SYMBOL_CACHE_SIZE"
)

// Config is the complete bridge configuration.
type Config struct {
	Version      int              `yaml:"version" json:"version"`
	LibraryPaths []string         `yaml:"library_paths" json:"library_paths"`
	Permission   PermissionConfig `yaml:"permission" json:"permission"`
	Mangle       MangleConfig     `yaml:"mangle" json:"mangle"`
	Symbols      SymbolsConfig    `yaml:"symbols" json:"symbols"`
	Logging      LoggingConfig    `yaml:"logging" json:"logging"`
}

// PermissionConfig selects the platform profile of the permission gate.
type PermissionConfig struct {
	// Enabled turns on the allow-list check for verified loads.
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// MangleConfig configures native symbol names.
type MangleConfig struct {
	Prefix string `yaml:"prefix" json:"prefix"`
}

// SymbolsConfig configures symbol lookup.
type SymbolsConfig struct {
	// CacheSize bounds the resolved-symbol cache. Zero selects the default.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LoggingConfig configures the bridge logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Version:      CurrentVersion,
		LibraryPaths: []string{},
		Mangle:       MangleConfig{Prefix: "ETS_"},
		Symbols:      SymbolsConfig{CacheSize: 1024},
		Logging:      LoggingConfig{Level: "info"},
	}
}

// GetUserConfigPath returns the path of the user configuration file:
//   - $XDG_CONFIG_HOME/nativebridge/config.yaml when XDG_CONFIG_HOME is set
//   - ~/.config/nativebridge/config.yaml otherwise
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nativebridge", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "nativebridge", "config.yaml")
	}
	return filepath.Join(home, ".config", "nativebridge", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load builds the configuration for dir. Sources, lowest precedence first:
//  1. defaults
//  2. user config
//  3. project config (.nativebridge.yaml in dir)
//  4. NATIVEBRIDGE_* environment variables
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if path := ProjectConfigPath(dir); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a single file over the defaults. Environment overrides
// are not applied.
func LoadFile(path string) (*Config, error) {
	if !fileExists(path) {
		return nil, bridgeerrors.New(bridgeerrors.ErrCodeConfigNotFound,
			"config file not found: "+path, nil)
	}
	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, preferring
// .yaml over .yml, or "" when there is none.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectFileYAML, ProjectFileYML} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return bridgeerrors.ConfigError(fmt.Sprintf("read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return bridgeerrors.ConfigError(fmt.Sprintf("parse config file %s", path), err).
			WithDetail("path", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies the non-zero fields of other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if len(other.LibraryPaths) > 0 {
		c.LibraryPaths = append([]string(nil), other.LibraryPaths...)
	}
	if other.Permission.Enabled {
		c.Permission.Enabled = true
	}
	if other.Mangle.Prefix != "" {
		c.Mangle.Prefix = other.Mangle.Prefix
	}
	if other.Symbols.CacheSize != 0 {
		c.Symbols.CacheSize = other.Symbols.CacheSize
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv(EnvLibraryPath); ok {
		c.LibraryPaths = SplitPathList(v)
	}
	if v := os.Getenv(EnvPermissionEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvPermissionEnabled, v, err)
		}
		c.Permission.Enabled = b
	}
	if v := os.Getenv(EnvManglePrefix); v != "" {
		c.Mangle.Prefix = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvSymbolCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvSymbolCacheSize, v, err)
		}
		c.Symbols.CacheSize = n
	}
	return nil
}

func envError(name, value string, err error) error {
	return bridgeerrors.New(bridgeerrors.ErrCodeConfigInvalid,
		fmt.Sprintf("%s=%q is not valid", name, value), err)
}

// SplitPathList splits a colon separated list, dropping empty entries.
func SplitPathList(s string) []string {
	paths := []string{}
	for _, p := range strings.Split(s, string(os.PathListSeparator)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Mangle.Prefix == "" {
		return invalid("mangle.prefix must not be empty")
	}
	if c.Symbols.CacheSize < 0 {
		return invalid(fmt.Sprintf("symbols.cache_size must be non-negative, got %d", c.Symbols.CacheSize))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return invalid(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level))
	}
	return nil
}

func invalid(msg string) error {
	return bridgeerrors.New(bridgeerrors.ErrCodeConfigInvalid, msg, nil).
		WithSuggestion("Fix the value in .nativebridge.yaml or the NATIVEBRIDGE_* environment")
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
