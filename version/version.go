package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time through -ldflags; see doc.go for the flags.
var (
	Version = "dev"
	Commit  = ""
	Branch  = ""
	BuiltAt = ""
)

// Info is a resolved snapshot of the build's version metadata.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Branch    string    `json:"branch"`
	GoVersion string    `json:"go_version"`
	BuiltAt   time.Time `json:"built_at"`
	Release   bool      `json:"release"`
	Modified  bool      `json:"modified"`
}

// Current resolves the build's version metadata. Values injected with
// -ldflags win; anything missing falls back to the VCS stamps Go embeds
// in the binary, and finally to the current time for BuiltAt.
func Current() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Branch:  Branch,
		Release: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuiltAt != "" {
		if t, err := time.Parse(time.RFC3339, BuiltAt); err == nil {
			info.BuiltAt = t
		}
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = build.GoVersion
		for _, setting := range build.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortCommit(setting.Value)
				}
			case "vcs.modified":
				info.Modified = setting.Value == "true"
			case "vcs.time":
				if info.BuiltAt.IsZero() {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuiltAt = t
					}
				}
			}
		}
	}

	if info.BuiltAt.IsZero() {
		info.BuiltAt = time.Now().UTC()
	}
	return info
}

// Short renders the compact form used in logs, "1.2.0-abc1234".
func (i Info) Short() string {
	if i.Commit == "" {
		return i.Version
	}
	if i.Modified {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.Commit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.Commit)
}

// String renders the full form including branch and build time.
// Mainline branches are omitted since they carry no information.
func (i Info) String() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		parts = append(parts, i.Commit)
	}
	if i.Branch != "" && i.Branch != "main" && i.Branch != "master" {
		parts = append(parts, i.Branch)
	}
	if i.Modified {
		parts = append(parts, "dirty")
	}
	s := strings.Join(parts, "-")
	if !i.BuiltAt.IsZero() {
		s += fmt.Sprintf(" (built %s)", i.BuiltAt.UTC().Format(time.RFC3339))
	}
	return s
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
