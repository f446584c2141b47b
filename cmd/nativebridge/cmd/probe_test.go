package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/dynlib/dynlibtest"
	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
)

func TestProbe_DetectsConstructorWithoutCalling(t *testing.T) {
	opener := dynlibtest.NewOpener().Add("/vendor/lib/libentry.so", map[string]uintptr{
		abi.LegacyEntryPoint: 0x1,
		abi.ModernEntryPoint: 0x2,
		"ETS_app_Main_run":   0x3,
	})

	pr, err := probe(opener, []string{"/system/lib", "/vendor/lib"}, "libentry.so", []string{"ETS_app_Main_run", "ETS_app_Main_stop"})

	require.NoError(t, err)
	assert.Equal(t, "/vendor/lib/libentry.so", pr.Path)
	assert.Equal(t, abi.LegacyEntryPoint, pr.EntryPoint)
	assert.Equal(t, map[string]bool{"ETS_app_Main_run": true, "ETS_app_Main_stop": false}, pr.Symbols)
	assert.True(t, opener.Opened()[0].Closed())
}

func TestProbe_NoConstructor(t *testing.T) {
	opener := dynlibtest.NewOpener().Add("libplain.so", nil)

	pr, err := probe(opener, nil, "libplain.so", nil)

	require.NoError(t, err)
	assert.Empty(t, pr.EntryPoint)
	assert.Nil(t, pr.Symbols)
}

func TestProbe_NotFound(t *testing.T) {
	_, err := probe(dynlibtest.NewOpener(), []string{"/a"}, "libnone.so", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, bridgeerrors.ErrLibraryLoad))
}

func TestPrintProbe(t *testing.T) {
	isolate(t)
	cmd := newProbeCmd()
	buf := &strings.Builder{}
	cmd.SetOut(buf)

	require.NoError(t, printProbe(cmd, probeResult{
		Library:    "libentry.so",
		Path:       "/vendor/lib/libentry.so",
		EntryPoint: abi.ModernEntryPoint,
		Symbols:    map[string]bool{"b": false, "a": true},
	}, false))

	assert.Equal(t, "✓ libentry.so resolved to /vendor/lib/libentry.so\n"+
		"  constructor: ANI_Constructor (modern, versions 1-1)\n"+
		"  a: exported\n"+
		"  b: missing\n", buf.String())
}
