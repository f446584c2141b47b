package abi

// Entry point symbols probed after a library is loaded.
const (
	LegacyEntryPoint = "EtsNapiOnLoad"
	ModernEntryPoint = "ANI_Constructor"
)

// LegacyVersion is the only interface version a legacy entry point may
// return.
const LegacyVersion int32 = 0x00010000

// Modern interface versions understood by this runtime.
const (
	MinModernVersion uint32 = 1
	MaxModernVersion uint32 = 1
)

// VersionRange accepts every version in [Min, Max].
type VersionRange struct {
	Min uint32
	Max uint32
}

// DefaultModernVersions is the range accepted from ANI_Constructor.
var DefaultModernVersions = VersionRange{Min: MinModernVersion, Max: MaxModernVersion}

// Supports reports whether v falls inside the range.
func (r VersionRange) Supports(v uint32) bool {
	return v >= r.Min && v <= r.Max
}
