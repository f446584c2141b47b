// Package logging sets up the bridge's structured logger.
//
// Without --debug the CLI logs warnings to stderr only. With --debug every
// record is also written as JSON to ~/.nativebridge/logs/bridge.log, rotated
// by size, and can be read back with `nativebridge logs`.
package logging
