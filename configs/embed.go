// Package configs embeds the configuration templates written by
// `nativebridge config init`.
//
// Precedence when loading (see internal/config Load):
//  1. defaults
//  2. user config ($XDG_CONFIG_HOME/nativebridge/config.yaml)
//  3. project config (.nativebridge.yaml)
//  4. NATIVEBRIDGE_* environment variables
package configs

import _ "embed"

// UserConfigTemplate is written to the user config path by
// `nativebridge config init`.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written to .nativebridge.yaml by
// `nativebridge config init --project`.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
