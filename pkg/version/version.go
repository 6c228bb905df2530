// Package version exposes build-time version metadata.
package version

// NavpolicyVersion is the semantic version string embedded at build time.
var NavpolicyVersion = "0.0.0-src"

// Set version at compile time with
// go build -ldflags "-X navpolicy/pkg/version.NavpolicyVersion=1.0.0" -o navpolicy

// For a release build with version and optimization flags:
// go build -ldflags "-s -w -X navpolicy/pkg/version.NavpolicyVersion=1.0.0" -o navpolicy
