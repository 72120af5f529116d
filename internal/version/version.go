// Package version holds the application version string.
package version

// Version is overridden at build time via
// -ldflags "-X github.com/armyblogger/stock-tracker/internal/version.Version=v1.2.3".
var Version = "dev"
