package fabricate

import (
	"context"
	"math"
	"os"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func TestBlankOutline(t *testing.T) {
	p := wall.Panel{
		Width:  0.95,
		Height: 0.95,
		Cells:  []wall.Cell{{X: 0, Y: 0, Size: 0.1}},
	}
	blank, err := Blank(p, wall.SquareShape())
	if err != nil {
		t.Fatalf("Blank: %v", err)
	}

	tests := []struct {
		name  string
		at    v2.Vec
		solid bool
	}{
		{"hole center", v2.Vec{X: 0, Y: 0}, false},
		{"sheet", v2.Vec{X: 300, Y: 0}, true},
		{"top flap", v2.Vec{X: 0, Y: 525}, true},
		{"left flap", v2.Vec{X: -525, Y: 100}, true},
		{"relieved corner", v2.Vec{X: 525, Y: 525}, false},
		{"beyond flap", v2.Vec{X: 0, Y: 600}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if solid := blank.Evaluate(tt.at) < 0; solid != tt.solid {
				t.Errorf("solid at %v = %v, want %v", tt.at, solid, tt.solid)
			}
		})
	}

	size := blank.BoundingBox().Size()
	if math.Abs(size.X-1150) > 1e-6 || math.Abs(size.Y-1150) > 1e-6 {
		t.Errorf("bounding box = %v, want 1150x1150", size)
	}
}

func TestBlankShapes(t *testing.T) {
	for _, shape := range []wall.Shape{wall.SquareShape(), wall.CircleShape(), wall.PolygonShape(6)} {
		t.Run(shape.String(), func(t *testing.T) {
			p := wall.Panel{Width: 0.5, Height: 0.5, Cells: []wall.Cell{{X: 0.1, Y: -0.1, Size: 0.08, Rotation: 15}}}
			blank, err := Blank(p, shape)
			if err != nil {
				t.Fatal(err)
			}
			if blank.Evaluate(v2.Vec{X: 100, Y: -100}) < 0 {
				t.Error("hole center is solid")
			}
			if blank.Evaluate(v2.Vec{X: -100, Y: 100}) >= 0 {
				t.Error("sheet away from the hole is not solid")
			}
		})
	}
}

func TestBlankRejectsEmptyPanel(t *testing.T) {
	_, err := Blank(wall.Panel{Width: -0.01, Height: 1}, wall.SquareShape())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExport(t *testing.T) {
	p := wall.Defaults()
	p.WallWidth = 3.04 // third column is negative and gets skipped
	p.WallHeight = 1
	p.VerticalPanelDivision = 1
	l, err := wall.Build(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	files, err := Export(context.Background(), l, Options{Dir: t.TempDir(), Resolution: 25})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("wrote %d files, want 2", len(files))
	}
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			t.Fatalf("stat %s: %v", f.Path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", f.Path)
		}
	}
	if files[0].Panel != "0-0" || files[1].Panel != "1-0" {
		t.Errorf("panels = %s, %s", files[0].Panel, files[1].Panel)
	}
}

func TestExportCanceled(t *testing.T) {
	l, _ := wall.Build(wall.Defaults(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Export(ctx, l, Options{Dir: t.TempDir()}); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Resolution != DefaultResolution || o.MeshCells != DefaultMeshCells || math.Abs(o.Thickness-0.5) > 1e-9 || o.Dir != "." {
		t.Errorf("defaults = %+v", o)
	}

	bad := Options{Resolution: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative resolution accepted")
	}
}
