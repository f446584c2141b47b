package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/nativebridge/configs"
	"github.com/Aman-CERP/nativebridge/internal/config"
)

func TestConfigInit_CreatesUserConfig(t *testing.T) {
	isolate(t)

	out, err := run(t, newConfigCmd(), "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Created user configuration")
	data, err := os.ReadFile(config.GetUserConfigPath())
	require.NoError(t, err)
	assert.Equal(t, configs.UserConfigTemplate, string(data))
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	isolate(t)
	_, err := run(t, newConfigCmd(), "init")
	require.NoError(t, err)

	out, err := run(t, newConfigCmd(), "init")

	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigInit_ForceBacksUp(t *testing.T) {
	isolate(t)
	_, err := run(t, newConfigCmd(), "init")
	require.NoError(t, err)

	out, err := run(t, newConfigCmd(), "init", "--force")

	require.NoError(t, err)
	assert.Contains(t, out, "backup:")
	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestConfigInit_Project(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, newConfigCmd(), "init", "--project")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.ProjectFileYAML))
}

func TestConfigShow_JSON(t *testing.T) {
	isolate(t)
	t.Setenv("NATIVEBRIDGE_MANGLE_PREFIX", "ANI_")

	out, err := run(t, newConfigCmd(), "show", "--json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "ANI_", cfg.Mangle.Prefix)
}

func TestConfigShow_YAML(t *testing.T) {
	isolate(t)

	out, err := run(t, newConfigCmd(), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "prefix: ETS_")
}

func TestConfigShow_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NATIVEBRIDGE_LOG_LEVEL", "loud")

	_, err := run(t, newConfigCmd(), "show")

	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	out, err := run(t, newConfigCmd(), "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetUserConfigPath(), strings.TrimSpace(out))
}
