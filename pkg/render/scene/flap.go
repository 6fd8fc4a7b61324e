package scene

import "github.com/matzehuels/perfwall/pkg/wall"

// Side names a panel edge.
type Side string

const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

// Flap is a strip folded back from one panel edge. Center is in the panel's
// local frame; the flap extends Depth behind the panel face.
type Flap struct {
	Side      Side       `json:"side"`
	Center    wall.Point `json:"center"`
	Length    float64    `json:"length"`
	Thickness float64    `json:"thickness"`
	Depth     float64    `json:"depth"`
}

// Flaps returns the four edge flaps of a panel of the given size, in the
// order top, bottom, left, right.
func Flaps(width, height float64) []Flap {
	t := FlapThickness
	return []Flap{
		{Top, wall.Point{X: 0, Y: height/2 + t/2}, width, t, FlapDepth},
		{Bottom, wall.Point{X: 0, Y: -height/2 - t/2}, width, t, FlapDepth},
		{Left, wall.Point{X: -width/2 - t/2, Y: 0}, height, t, FlapDepth},
		{Right, wall.Point{X: width/2 + t/2, Y: 0}, height, t, FlapDepth},
	}
}

// Horizontal reports whether the flap runs along the X axis.
func (f Flap) Horizontal() bool {
	return f.Side == Top || f.Side == Bottom
}
