package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the a11ylens CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine-readable build description.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}
}

// Colored renders Version with the major, minor and patch parts tinted.
// Non-semver strings are returned unchanged.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = Version[:i], Version[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// String is the one-line form printed by `a11ylens version`.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("a11ylens ")
	sb.WriteString(i.Version)
	if i.GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(i.GitCommit)
		sb.WriteString(")")
	}
	if i.BuildDate != "" {
		sb.WriteString(" built ")
		sb.WriteString(i.BuildDate)
	}
	return sb.String()
}
