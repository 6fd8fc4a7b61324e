package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/perfwall/pkg/wall"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestDimensions(t *testing.T) {
	s := Build(wall.Defaults())

	if got := s.Width.Line.Length(); !near(got, 5) {
		t.Errorf("width line length = %v, want 5", got)
	}
	if y := s.Width.Line.From.Y; !near(y, 2.3) {
		t.Errorf("width line y = %v, want 2.3", y)
	}
	if s.Width.Label.Text != "5.0m" || !near(s.Width.Label.At.Y, 2.5) {
		t.Errorf("width label = %+v", s.Width.Label)
	}

	if got := s.Height.Line.Length(); !near(got, 4) {
		t.Errorf("height line length = %v, want 4", got)
	}
	if x := s.Height.Line.From.X; !near(x, 2.8) {
		t.Errorf("height line x = %v, want 2.8", x)
	}
	if s.Height.Label.Text != "4.0m" || s.Height.Label.Rotation != 90 {
		t.Errorf("height label = %+v", s.Height.Label)
	}
}

func TestArrowTipsAtLineEnds(t *testing.T) {
	s := Build(wall.Defaults())
	for _, d := range []Dimension{s.Width, s.Height} {
		if d.Arrows[0][1] != d.Line.From || d.Arrows[1][1] != d.Line.To {
			t.Errorf("arrow tips %v %v do not match line %+v", d.Arrows[0][1], d.Arrows[1][1], d.Line)
		}
		for _, a := range d.Arrows {
			wing := Segment{From: a[0], To: a[2]}
			if !near(wing.Length(), 2*ArrowHalfWidth) {
				t.Errorf("arrow width = %v", wing.Length())
			}
		}
	}
}

func TestGroundAndFigure(t *testing.T) {
	p := wall.Defaults()
	p.WallHeight = 3
	s := Build(p)

	if !near(s.Ground.From.Y, -1.51) || s.Ground.From.Y != s.Ground.To.Y {
		t.Errorf("ground = %+v", s.Ground)
	}
	if s.Ground.From.X > s.Figure.Left() {
		t.Error("ground does not reach under the figure")
	}

	f := s.Figure
	if !near(f.Head.Y+f.Radius, s.Ground.From.Y+FigureHeight) {
		t.Errorf("figure top = %v", f.Head.Y+f.Radius)
	}
	if !near(f.Head.X, -p.WallWidth/2-FigureOffset) {
		t.Errorf("figure x = %v", f.Head.X)
	}
	for _, l := range f.Limbs {
		if l.From.Y < s.Ground.From.Y-eps || l.To.Y < s.Ground.From.Y-eps {
			t.Errorf("limb below ground: %+v", l)
		}
	}
}

func TestBoundsContainWall(t *testing.T) {
	s := Build(wall.Defaults())
	lo, hi := s.Bounds()
	if lo.X > -2.5 || lo.Y > -2 || hi.X < 2.5+LabelOffset || hi.Y < 2+LabelOffset {
		t.Errorf("bounds %v..%v do not contain wall and labels", lo, hi)
	}
}

func TestFlaps(t *testing.T) {
	flaps := Flaps(1.45, 1.95)
	if len(flaps) != 4 {
		t.Fatalf("got %d flaps", len(flaps))
	}
	want := map[Side]wall.Point{
		Top:    {X: 0, Y: 0.975 + FlapThickness/2},
		Bottom: {X: 0, Y: -0.975 - FlapThickness/2},
		Left:   {X: -0.725 - FlapThickness/2, Y: 0},
		Right:  {X: 0.725 + FlapThickness/2, Y: 0},
	}
	for _, f := range flaps {
		w := want[f.Side]
		if !near(f.Center.X, w.X) || !near(f.Center.Y, w.Y) {
			t.Errorf("%s flap center = %v, want %v", f.Side, f.Center, w)
		}
		if f.Depth != FlapDepth {
			t.Errorf("%s flap depth = %v", f.Side, f.Depth)
		}
		wantLen := 1.95
		if f.Horizontal() {
			wantLen = 1.45
		}
		if f.Length != wantLen {
			t.Errorf("%s flap length = %v, want %v", f.Side, f.Length, wantLen)
		}
	}
}
