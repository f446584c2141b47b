// Package version reports build information and the native interface
// versions this bridge accepts.
package version

import (
	"fmt"
	"runtime"

	"github.com/Aman-CERP/nativebridge/internal/abi"
)

// Version is set with -ldflags "-X github.com/Aman-CERP/nativebridge/pkg/version.Version=...".
var Version = "dev"

// Build information, also set via ldflags.
var (
	Commit = "unknown"
	// Date is the build date in RFC3339 format.
	Date = "unknown"

	GoVersion = runtime.Version()
)

// BuildInfo is structured version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	ABI       ABI    `json:"abi"`
}

// ABI describes the accepted constructor protocols.
type ABI struct {
	LegacyEntryPoint string `json:"legacy_entry_point"`
	LegacyVersion    string `json:"legacy_version"`
	ModernEntryPoint string `json:"modern_entry_point"`
	ModernMin        uint32 `json:"modern_min"`
	ModernMax        uint32 `json:"modern_max"`
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("nativebridge %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

// Short returns just the version string.
func Short() string {
	return Version
}

// GetInfo returns structured version information.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		ABI: ABI{
			LegacyEntryPoint: abi.LegacyEntryPoint,
			LegacyVersion:    fmt.Sprintf("0x%08x", abi.LegacyVersion),
			ModernEntryPoint: abi.ModernEntryPoint,
			ModernMin:        abi.MinModernVersion,
			ModernMax:        abi.MaxModernVersion,
		},
	}
}
