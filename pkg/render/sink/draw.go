package sink

import (
	"fmt"

	"github.com/matzehuels/perfwall/pkg/render/finish"
	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// canvas receives drawing calls in page pixels.
type canvas interface {
	Begin(id string)
	End()
	Rect(x, y, w, h float64, fill, stroke string)
	Polygon(pts []wall.Point, fill string)
	Circle(cx, cy, r float64, fill string)
	Polyline(pts []wall.Point, stroke string, width float64)
	Text(s string, x, y, size, rotation float64, fill string)
}

func draw(c canvas, l wall.Layout, sc scene.Scene, f frame, o options) {
	fin := finish.For(l.Params)
	s := f.scale

	c.Rect(0, 0, f.width(), f.height(), o.background, "")

	if o.ground {
		c.Polyline([]wall.Point{f.point(sc.Ground.From), f.point(sc.Ground.To)}, o.ink, 2)
	}

	for _, p := range l.Panels {
		if p.Width <= 0 || p.Height <= 0 {
			continue
		}
		c.Begin(fmt.Sprintf("panel-%d-%d", p.I, p.J))
		c.Rect(f.x(p.X-p.Width/2), f.y(p.Y+p.Height/2), p.Width*s, p.Height*s, fin.Hex(), o.edge)
		for _, cell := range p.Cells {
			cx, cy := f.x(p.X+cell.X), f.y(p.Y+cell.Y)
			if l.Params.Shape.Kind == wall.Circle {
				c.Circle(cx, cy, cell.Size/2*s, o.background)
				continue
			}
			pts := l.Params.Shape.Outline(cell.Size, cell.Rotation)
			for i, pt := range pts {
				pts[i] = wall.Point{X: cx + pt.X*s, Y: cy - pt.Y*s}
			}
			c.Polygon(pts, o.background)
		}
		c.End()
	}

	if o.dimensions {
		for _, d := range []scene.Dimension{sc.Width, sc.Height} {
			c.Polyline([]wall.Point{f.point(d.Line.From), f.point(d.Line.To)}, o.ink, 2)
			for _, a := range d.Arrows {
				c.Polyline(f.points(a), o.ink, 2)
			}
			at := f.point(d.Label.At)
			c.Text(d.Label.Text, at.X, at.Y, labelSize*s, d.Label.Rotation, o.ink)
		}
	}

	if o.figure {
		fig := sc.Figure
		head := f.point(fig.Head)
		c.Circle(head.X, head.Y, fig.Radius*s, o.ink)
		for _, limb := range fig.Limbs {
			c.Polyline([]wall.Point{f.point(limb.From), f.point(limb.To)}, o.ink, max(2, 0.04*s))
		}
	}
}

func (f frame) points(pts []wall.Point) []wall.Point {
	out := make([]wall.Point, len(pts))
	for i, p := range pts {
		out[i] = f.point(p)
	}
	return out
}
