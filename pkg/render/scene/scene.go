// Package scene computes the presentation geometry drawn around a wall:
// dimension lines with their labels, the ground line, a human-scale
// reference figure and the folded edge flaps of each panel.
//
// All coordinates are in meters in the wall frame: origin at the wall
// center, +X right, +Y up. Nothing here affects the layout or the price.
package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/perfwall/pkg/wall"
)

const (
	DimensionOffset = 0.3  // distance from the wall edge to a dimension line
	LabelOffset     = 0.5  // distance from the wall edge to a dimension label
	ArrowLength     = 0.1  // arrow cap length along the line
	ArrowHalfWidth  = 0.05 // arrow cap half width across the line
	GroundDrop      = 0.01 // ground sits this far below the wall bottom
	FigureHeight    = 1.9
	FigureOffset    = 0.3 // figure center distance left of the wall
	FlapDepth       = 0.1
	FlapThickness   = 0.0005
)

// Segment is a straight line between two points.
type Segment struct {
	From wall.Point `json:"from"`
	To   wall.Point `json:"to"`
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}

// Label is a text anchored at its center. Rotation is in degrees,
// counter-clockwise.
type Label struct {
	Text     string     `json:"text"`
	At       wall.Point `json:"at"`
	Rotation float64    `json:"rotation"`
}

// Dimension is a measured line with an arrow cap at each end.
type Dimension struct {
	Line   Segment         `json:"line"`
	Arrows [2][]wall.Point `json:"arrows"` // open polylines, tip in the middle
	Label  Label           `json:"label"`
}

// Figure is a stick figure standing on the ground line.
type Figure struct {
	Height float64    `json:"height"`
	Head   wall.Point `json:"head"`
	Radius float64    `json:"radius"`
	Limbs  []Segment  `json:"limbs"`
}

// Scene is everything drawn around the panels of one wall.
type Scene struct {
	WallWidth  float64   `json:"wallWidth"`
	WallHeight float64   `json:"wallHeight"`
	Width      Dimension `json:"width"`
	Height     Dimension `json:"height"`
	Ground     Segment   `json:"ground"`
	Figure     Figure    `json:"figure"`
}

// Build computes the scene for a wall of the size given in p.
func Build(p wall.Params) Scene {
	w, h := p.WallWidth, p.WallHeight
	groundY := GroundY(h)

	s := Scene{
		WallWidth:  w,
		WallHeight: h,
		Width: dimension(
			wall.Point{X: -w / 2, Y: h/2 + DimensionOffset},
			wall.Point{X: w / 2, Y: h/2 + DimensionOffset},
			Label{Text: fmt.Sprintf("%.1fm", w), At: wall.Point{X: 0, Y: h/2 + LabelOffset}},
		),
		Height: dimension(
			wall.Point{X: w/2 + DimensionOffset, Y: -h / 2},
			wall.Point{X: w/2 + DimensionOffset, Y: h / 2},
			Label{Text: fmt.Sprintf("%.1fm", h), At: wall.Point{X: w/2 + LabelOffset, Y: 0}, Rotation: 90},
		),
		Figure: figure(-w/2-FigureOffset, groundY, FigureHeight),
	}

	left := min(-w/2, s.Figure.Left()) - 0.5
	right := w/2 + LabelOffset + 0.5
	s.Ground = Segment{From: wall.Point{X: left, Y: groundY}, To: wall.Point{X: right, Y: groundY}}
	return s
}

// GroundY returns the height of the ground line for a wall of height h.
func GroundY(h float64) float64 {
	return -h/2 - GroundDrop
}

func dimension(from, to wall.Point, label Label) Dimension {
	return Dimension{
		Line:   Segment{From: from, To: to},
		Arrows: [2][]wall.Point{arrow(from, to), arrow(to, from)},
		Label:  label,
	}
}

// arrow returns the cap at tip, opening back toward tail.
func arrow(tip, tail wall.Point) []wall.Point {
	dx, dy := tail.X-tip.X, tail.Y-tip.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return []wall.Point{tip, tip, tip}
	}
	ux, uy := dx/l, dy/l
	nx, ny := -uy, ux
	base := wall.Point{X: tip.X + ux*ArrowLength, Y: tip.Y + uy*ArrowLength}
	return []wall.Point{
		{X: base.X + nx*ArrowHalfWidth, Y: base.Y + ny*ArrowHalfWidth},
		tip,
		{X: base.X - nx*ArrowHalfWidth, Y: base.Y - ny*ArrowHalfWidth},
	}
}

// figure builds a stick figure of the given height centered on x with its
// feet at ground. Proportions follow the eight-heads canon.
func figure(x, ground, height float64) Figure {
	r := height / 16
	top := ground + height
	neck := top - 2*r
	shoulder := neck - 0.03*height
	hip := ground + 0.5*height
	hand := ground + 0.45*height
	arm := 0.12 * height
	leg := 0.08 * height

	pt := func(dx, y float64) wall.Point { return wall.Point{X: x + dx, Y: y} }
	return Figure{
		Height: height,
		Head:   pt(0, top-r),
		Radius: r,
		Limbs: []Segment{
			{pt(0, neck), pt(0, hip)},
			{pt(0, shoulder), pt(-arm, hand)},
			{pt(0, shoulder), pt(arm, hand)},
			{pt(0, hip), pt(-leg, ground)},
			{pt(0, hip), pt(leg, ground)},
		},
	}
}

// Left returns the leftmost extent of the figure.
func (f Figure) Left() float64 {
	left := f.Head.X - f.Radius
	for _, l := range f.Limbs {
		left = min(left, l.From.X, l.To.X)
	}
	return left
}

// Bounds returns the rectangle enclosing the wall and every scene element,
// as min and max corners.
func (s Scene) Bounds() (lo, hi wall.Point) {
	lo = wall.Point{X: s.Ground.From.X, Y: s.Ground.From.Y}
	hi = wall.Point{X: s.Ground.To.X, Y: s.WallHeight/2 + LabelOffset + 0.2}
	hi.Y = max(hi.Y, s.Figure.Head.Y+s.Figure.Radius)
	return lo, hi
}
