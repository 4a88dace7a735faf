// Package version holds build metadata, overridable with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of globalint.
	Version = "0.1.0-dev"

	// GitCommit is an optional commit hash.
	GitCommit = ""

	// BuildDate is an optional ISO-8601 build date.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major, minor and patch in distinct colors.
// fatih/color drops the escapes when color is disabled.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the machine-readable build description.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate, GoVersion: runtime.Version()}
}

// String is the one-line form printed by `globalint version`.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "globalint %s", i.Version)
	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s)", commit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", i.BuildDate)
	}
	fmt.Fprintf(&sb, " %s", i.GoVersion)
	return sb.String()
}
