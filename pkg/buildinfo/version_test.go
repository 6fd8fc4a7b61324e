package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

// stamp sets the ldflag variables for one test.
func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name                  string
		version, commit, date string
		wantV, wantC, wantD   string
	}{
		{"unset values filled", "dev", "none", "unknown", "v0.3.1", "0123456789abcdef", "2026-01-02T03:04:05Z"},
		{"ldflags win", "v1.0.0", "cafe", "today", "v1.0.0", "cafe", "today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, tt.date)
			fromBuildInfo(bi)
			if Version != tt.wantV || Commit != tt.wantC || Date != tt.wantD {
				t.Errorf("got %s/%s/%s, want %s/%s/%s", Version, Commit, Date, tt.wantV, tt.wantC, tt.wantD)
			}
		})
	}
}

func TestFromBuildInfoDevel(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev for (devel) builds", Version)
	}
}

func TestString(t *testing.T) {
	fill()
	stamp(t, "v1.2.3", "0123456789abcdef", "2026-01-02")
	got := String()
	if got != "perfwall v1.2.3 (commit 0123456789ab, built 2026-01-02)" {
		t.Errorf("String() = %q", got)
	}
	if !strings.HasPrefix(UserAgent(), "perfwall/v1.2.3") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
