// Package buildinfo reports which perfwall build is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/perfwall/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/perfwall/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/perfwall/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries installed with `go install` carry no ldflags; their module
// version and VCS revision are read from the embedded build info instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fillOnce sync.Once

// fill replaces unset ldflag values with the embedded build info.
func fill() {
	fillOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		fromBuildInfo(bi)
	})
}

func fromBuildInfo(bi *debug.BuildInfo) {
	if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Current returns the resolved version.
func Current() string {
	fill()
	return Version
}

// String returns a one-line build description.
func String() string {
	fill()
	return fmt.Sprintf("perfwall %s (commit %s, built %s)", Version, shortCommit(), Date)
}

// Template returns the version template for cobra.
func Template() string {
	fill()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}

// UserAgent returns the User-Agent sent with image downloads.
func UserAgent() string {
	fill()
	return "perfwall/" + Version
}

func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}
