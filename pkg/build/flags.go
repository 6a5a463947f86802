// Package build carries build metadata injected at compile time via
// -ldflags, for example:
//
//	go build -ldflags "-X cascade/pkg/build.buildName=cascade \
//	    -X cascade/pkg/build.buildVersion=0.1.0 ..."
//
// Development builds without flags fall back to "dev" placeholders instead
// of failing, so `go run .` works out of the box.
package build

type ldFlags struct {
	Name    string // Application name
	Time    string // Build timestamp (RFC3339)
	Commit  string // Git commit hash
	Version string // Semantic version
}

// Package-level variables populated by -ldflags during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &ldFlags{
		Name:    "cascade",
		Time:    "dev",
		Commit:  "dev",
		Version: "dev",
	}
)

// Initialize copies any ldflags-provided values over the development
// defaults. Call early in program startup, before anything reads the flags.
func Initialize() {
	if buildName != "" {
		buildFlags.Name = buildName
	}
	if buildTime != "" {
		buildFlags.Time = buildTime
	}
	if buildCommit != "" {
		buildFlags.Commit = buildCommit
	}
	if buildVersion != "" {
		buildFlags.Version = buildVersion
	}
}

// GetBuildFlags returns the current build information. Initialize should be
// called first.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
