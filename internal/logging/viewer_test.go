package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `{"time":"2026-03-01T10:00:00.000Z","level":"DEBUG","msg":"library opened","library":"liba.so","path":"/lib/liba.so"}
not json at all
{"time":"2026-03-01T10:00:01.000Z","level":"WARN","msg":"native library has no constructor entry point","library":"libb.so"}
{"time":"2026-03-01T10:00:02.000Z","level":"ERROR","msg":"native library rejected","library":"liba.so","outcome":"version-rejected"}
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLine(t *testing.T) {
	e := ParseLine(`{"time":"2026-03-01T10:00:02.5Z","level":"ERROR","msg":"rejected","library":"liba.so","status":"ANI_ERROR"}`)

	assert.True(t, e.IsValid)
	assert.Equal(t, "ERROR", e.Level)
	assert.Equal(t, "rejected", e.Msg)
	assert.Equal(t, "liba.so", e.Library)
	assert.Equal(t, map[string]any{"status": "ANI_ERROR"}, e.Attrs)
	assert.Equal(t, 500*time.Millisecond, time.Duration(e.Time.Nanosecond()))

	bad := ParseLine("plain text")
	assert.False(t, bad.IsValid)
	assert.Equal(t, "plain text", bad.Raw)
}

func TestViewer_Tail(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, err := NewViewer(ViewerConfig{}, nil).Tail(path, 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "libb.so", entries[0].Library)
	assert.Equal(t, "native library rejected", entries[1].Msg)
}

func TestViewer_TailFilters(t *testing.T) {
	path := writeLog(t, sampleLog)

	byLevel, err := NewViewer(ViewerConfig{Level: "warn"}, nil).Tail(path, 100)
	require.NoError(t, err)
	assert.Len(t, byLevel, 2)

	byLib, err := NewViewer(ViewerConfig{Library: "liba.so"}, nil).Tail(path, 100)
	require.NoError(t, err)
	require.Len(t, byLib, 2)
	assert.Equal(t, "library opened", byLib[0].Msg)
}

func TestViewer_TailMissing(t *testing.T) {
	_, err := NewViewer(ViewerConfig{}, nil).Tail(filepath.Join(t.TempDir(), "nope"), 10)

	assert.Error(t, err)
}

func TestViewer_FormatEntry(t *testing.T) {
	v := NewViewer(ViewerConfig{NoColor: true}, nil)
	e := ParseLine(`{"time":"2026-03-01T10:00:02.000Z","level":"ERROR","msg":"rejected","library":"liba.so","version":2,"entry_point":"ANI_Constructor"}`)

	assert.Equal(t, "10:00:02.000 ERROR [liba.so] rejected entry_point=ANI_Constructor version=2", v.FormatEntry(e))
	assert.Equal(t, "raw", v.FormatEntry(Entry{Raw: "raw"}))
}

func TestViewer_Print(t *testing.T) {
	var buf bytes.Buffer
	v := NewViewer(ViewerConfig{NoColor: true}, &buf)

	v.Print([]Entry{{Raw: "one"}, {Raw: "two"}})

	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestViewer_Follow(t *testing.T) {
	path := writeLog(t, sampleLog)
	v := NewViewer(ViewerConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	entries := make(chan Entry, 4)
	done := make(chan error, 1)
	go func() { done <- v.Follow(ctx, path, entries) }()

	// Give Follow time to seek past the existing content.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(strings.TrimSpace(`{"time":"2026-03-01T10:00:03.000Z","level":"INFO","msg":"appended"}`) + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case e := <-entries:
		assert.Equal(t, "appended", e.Msg)
	case <-time.After(5 * time.Second):
		t.Fatal("appended entry not observed")
	}

	cancel()
	assert.NoError(t, <-done)
}
