package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
		set  string
		want string
	}{
		{"cache default", "XDG_CACHE_HOME", cacheDir, "", filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", cacheDir, "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
		{"data default", "XDG_DATA_HOME", dataDir, "", filepath.Join(home, ".local", "share", appName)},
		{"data xdg", "XDG_DATA_HOME", dataDir, "/tmp/xdg-data", filepath.Join("/tmp/xdg-data", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.set)
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultOrderDB(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	got, err := defaultOrderDB()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-data", appName, "orders.db"); got != want {
		t.Errorf("defaultOrderDB() = %q, want %q", got, want)
	}
}
