package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/raster"
)

func encoded(t *testing.T, m *raster.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, m); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestKindOf(t *testing.T) {
	tests := map[string]Kind{
		"-":                         KindStdin,
		"https://example.com/a.png": KindURL,
		"http://example.com/a.png":  KindURL,
		"photo.jpg":                 KindFile,
		"./http-photo.png":          KindFile,
	}
	for src, want := range tests {
		if got := KindOf(src); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", src, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	if err := os.WriteFile(path, encoded(t, raster.Gradient(40, 20)), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Kind != KindFile || l.Format != "png" || l.Image.Width != 40 || l.Image.Height != 20 {
		t.Errorf("loaded %+v", l)
	}

	l, err = Load(context.Background(), path, Options{MaxDim: 10})
	if err != nil {
		t.Fatal(err)
	}
	if l.Image.Width != 10 || l.Image.Height != 5 {
		t.Errorf("fitted size = %dx%d, want 10x5", l.Image.Width, l.Image.Height)
	}
}

func TestLoadStdin(t *testing.T) {
	in := bytes.NewReader(encoded(t, raster.Uniform(3, 3, 9)))
	l, err := Load(context.Background(), "-", Options{Stdin: in})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Kind != KindStdin || l.Image.Width != 3 {
		t.Errorf("loaded %+v", l)
	}
}

func TestLoadURL(t *testing.T) {
	body := encoded(t, raster.Uniform(4, 2, 200))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	l, err := Load(context.Background(), srv.URL+"/wall.png", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Kind != KindURL || l.Image.Width != 4 || l.Bytes != len(body) {
		t.Errorf("loaded %+v", l)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "notes.txt")
	os.WriteFile(garbage, []byte("not an image"), 0o644)

	tests := []struct {
		name string
		src  string
		opts Options
		want errors.Code
	}{
		{"missing file", filepath.Join(dir, "missing.png"), Options{}, errors.ErrCodeNotFound},
		{"not an image", garbage, Options{}, errors.ErrCodeInvalidImage},
		{"stdin too large", "-", Options{Stdin: strings.NewReader("0123456789"), MaxSize: 4}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.src, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}
