// Package version provides build version information embedding for
// shellkit applications.
//
// Version, Commit, Branch, and BuiltAt are set at compile time via
// -ldflags; Current fills the gaps from the VCS stamps Go embeds:
//
//	go build -ldflags "\
//	  -X github.com/skillsenselab/shellkit/version.Version=1.2.0 \
//	  -X github.com/skillsenselab/shellkit/version.Commit=$(git rev-parse --short HEAD)"
package version
