// Package version exposes build version metadata.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"

// GetInfo returns the human-readable version string.
func GetInfo() string {
	return Version
}
