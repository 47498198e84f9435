// Package version records build metadata injected at link time via
// -ldflags "-X github.com/doeshing/ask-go/internal/version.Version=...".
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
