// Package settings provides build metadata, runtime configuration, and
// context helpers used across the rich-tables CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tables"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the application.
// It includes options for logging, output formatting, record limiting, and
// error handling behavior.
type Run struct {
	MinLogLevel int8
	IsQuiet     bool
	NoColor     bool
	Width       int
	Interactive bool
	ExitOnError bool
}

// NewCliParams initializes and returns a pointer to a Run struct with default
// CLI parameters: logging level 0, color output enabled, width auto-detected,
// and exit-on-error behavior.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		NoColor:     false,
		Width:       0,
		Interactive: false,
		ExitOnError: true,
	}
}
