package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// isolate gives the test an empty working directory, user config home and
// NATIVEBRIDGE_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"NATIVEBRIDGE_LIBRARY_PATH",
		"NATIVEBRIDGE_PERMISSION_ENABLED",
		"NATIVEBRIDGE_MANGLE_PREFIX",
		"NATIVEBRIDGE_LOG_LEVEL",
		"NATIVEBRIDGE_SYMBOL_CACHE_SIZE",
	} {
		// Setenv restores the value on cleanup; the variable itself must be
		// unset because an empty NATIVEBRIDGE_LIBRARY_PATH clears the list.
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
