// Package version holds the build stamp, overridden at link time via
// -ldflags "-X".
package version

var (
	// Version is the release version of the builder tooling.
	Version = "dev"
	// GitSHA identifies the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)
