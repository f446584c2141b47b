package libpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/nativebridge/internal/dynlib/dynlibtest"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		lib  string
		want []string
	}{
		{
			name: "search dirs then bare name",
			dirs: []string{"/a", "/b"},
			lib:  "x.so",
			want: []string{"/a/x.so", "/b/x.so", "x.so"},
		},
		{
			name: "empty dirs skipped",
			dirs: []string{"", "/b", ""},
			lib:  "x.so",
			want: []string{"/b/x.so", "x.so"},
		},
		{
			name: "no dirs",
			dirs: nil,
			lib:  "x.so",
			want: []string{"x.so"},
		},
		{
			name: "relative path bypasses search dirs",
			dirs: []string{"/a", "/b"},
			lib:  "sub/dir/x.so",
			want: []string{"sub/dir/x.so"},
		},
		{
			name: "absolute path bypasses search dirs",
			dirs: []string{"/a"},
			lib:  "/opt/lib/x.so",
			want: []string{"/opt/lib/x.so"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.dirs, tt.lib))
		})
	}
}

func TestResolve_PathPrecedence(t *testing.T) {
	// /a/x.so is absent, /b/x.so loads.
	opener := dynlibtest.NewOpener().Add("/b/x.so", nil).Add("x.so", nil)
	r := New(opener, nil)

	res, err := r.Resolve([]string{"/a", "/b"}, "x.so")

	require.NoError(t, err)
	assert.Equal(t, "/b/x.so", res.Path)
	assert.Equal(t, []string{"/a/x.so", "/b/x.so"}, opener.Attempts())
	assert.Equal(t, "/b/x.so", res.Handle.(*dynlibtest.Handle).Path)
}

func TestResolve_PathBypass(t *testing.T) {
	opener := dynlibtest.NewOpener().Add("sub/dir/x.so", nil)
	r := New(opener, nil)

	res, err := r.Resolve([]string{"/a", "/b"}, "sub/dir/x.so")

	require.NoError(t, err)
	assert.Equal(t, "sub/dir/x.so", res.Path)
	assert.Equal(t, []string{"sub/dir/x.so"}, opener.Attempts())
}

func TestResolve_FallsBackToBareName(t *testing.T) {
	opener := dynlibtest.NewOpener().Add("libsys.so", nil)
	r := New(opener, nil)

	res, err := r.Resolve([]string{"/a"}, "libsys.so")

	require.NoError(t, err)
	assert.Equal(t, "libsys.so", res.Path)
	assert.Equal(t, []string{"/a/libsys.so", "libsys.so"}, opener.Attempts())
}

func TestResolve_AllFail(t *testing.T) {
	opener := dynlibtest.NewOpener()
	r := New(opener, nil)

	_, err := r.Resolve([]string{"/a", "/b"}, "x.so")

	require.Error(t, err)
	// Only the last failure is reported.
	assert.Contains(t, err.Error(), "dlopen x.so")
	assert.NotContains(t, err.Error(), "/a/x.so")
	assert.Len(t, opener.Attempts(), 3)
}

func TestResolve_EmptyName(t *testing.T) {
	opener := dynlibtest.NewOpener()
	r := New(opener, nil)

	_, err := r.Resolve([]string{"/a"}, "")

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, opener.Attempts())
}
