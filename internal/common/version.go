package common

import "fmt"

// Version variables injected at build time via ldflags
var (
	Version = "dev"
	Build   = "unknown"
)

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns a formatted version string with build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s)", Version, Build)
}
