// Package version reports the build version, set at link time with
// -ldflags "-X github.com/rshade/feedline/pkg/version.version=v1.2.3".
package version

import "runtime/debug"

var version = "" //nolint:gochecknoglobals // Set via ldflags.

// GetVersion returns the linked version, the module version from build
// info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
