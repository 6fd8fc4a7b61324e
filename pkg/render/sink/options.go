package sink

import (
	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

const (
	// DefaultPixelsPerMeter is the elevation scale used when none is set.
	DefaultPixelsPerMeter = 200.0

	// MaxPixels caps the longer side of an elevation. Larger walls are
	// drawn at a reduced scale.
	MaxPixels = 8192.0

	margin    = 0.1  // meters around a bare wall
	labelSize = 0.16 // dimension label height in meters
)

// Option configures the elevation sinks (SVG, PNG, PDF).
type Option func(*options)

type options struct {
	ppm        float64
	dimensions bool
	figure     bool
	ground     bool
	background string
	edge       string
	ink        string
}

func WithPixelsPerMeter(ppm float64) Option {
	return func(o *options) {
		if ppm > 0 {
			o.ppm = ppm
		}
	}
}

func WithDimensions() Option { return func(o *options) { o.dimensions = true } }
func WithFigure() Option     { return func(o *options) { o.figure = true } }
func WithGround() Option     { return func(o *options) { o.ground = true } }

// WithBackground sets the page color as "#rrggbb". Holes show the
// background through the sheet.
func WithBackground(hex string) Option { return func(o *options) { o.background = hex } }

// WithScene turns every scene element on or off at once.
func WithScene(on bool) Option {
	return func(o *options) { o.dimensions, o.figure, o.ground = on, on, on }
}

func newOptions(opts ...Option) options {
	o := options{
		ppm:        DefaultPixelsPerMeter,
		background: "#ffffff",
		edge:       "#555555",
		ink:        "#000000",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) anyScene() bool { return o.dimensions || o.figure || o.ground }

// frame maps wall coordinates (meters, +Y up) to page pixels (+Y down).
type frame struct {
	lo, hi wall.Point
	scale  float64
}

func newFrame(l wall.Layout, sc scene.Scene, o options) frame {
	w, h := l.Params.WallWidth, l.Params.WallHeight
	lo := wall.Point{X: -w/2 - margin, Y: -h/2 - margin}
	hi := wall.Point{X: w/2 + margin, Y: h/2 + margin}
	if o.anyScene() {
		lo, hi = sc.Bounds()
	}
	scale := o.ppm
	if longest := max(hi.X-lo.X, hi.Y-lo.Y) * scale; longest > MaxPixels {
		scale = MaxPixels / max(hi.X-lo.X, hi.Y-lo.Y)
	}
	return frame{lo: lo, hi: hi, scale: scale}
}

func (f frame) x(v float64) float64 { return (v - f.lo.X) * f.scale }
func (f frame) y(v float64) float64 { return (f.hi.Y - v) * f.scale }
func (f frame) width() float64      { return (f.hi.X - f.lo.X) * f.scale }
func (f frame) height() float64     { return (f.hi.Y - f.lo.Y) * f.scale }

func (f frame) point(p wall.Point) wall.Point {
	return wall.Point{X: f.x(p.X), Y: f.y(p.Y)}
}
