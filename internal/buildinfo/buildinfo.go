// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/okulfonu/destekbot/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/okulfonu/destekbot/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/okulfonu/destekbot/internal/buildinfo.BuildDate=...
var BuildDate = ""

// Release returns a release identifier for error tracking, or empty when no
// version was injected.
func Release() string {
	if Version == "" {
		return ""
	}
	if Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}
