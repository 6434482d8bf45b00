// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Speechmark is the canonical application identifier used for filesystem paths and CLI branding.
	Speechmark = "speechmark"

	// Version is the current application semantic version string.
	Version = "0.3.1"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is printed above the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string

// GOOS values that get their own install hint in `speechmark check`.
const (
	Darwin  = "darwin"
	Linux   = "linux"
	Windows = "windows"
)
