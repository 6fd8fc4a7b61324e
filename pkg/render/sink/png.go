package sink

import (
	"bytes"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// RenderPNG rasterises the front elevation of l. Unlike [RenderPDF] it
// needs no external tools.
func RenderPNG(l wall.Layout, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	sc := scene.Build(l.Params)
	f := newFrame(l, sc, o)

	dc := gg.NewContext(int(f.width()+0.5), int(f.height()+0.5))
	draw(&ggCanvas{dc: dc}, l, sc, f, o)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ggCanvas struct {
	dc *gg.Context
}

func (c *ggCanvas) Begin(string) {}
func (c *ggCanvas) End()         {}

func (c *ggCanvas) Rect(x, y, w, h float64, fill, stroke string) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetHexColor(fill)
	if stroke == "" {
		c.dc.Fill()
		return
	}
	c.dc.FillPreserve()
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(1)
	c.dc.Stroke()
}

func (c *ggCanvas) Polygon(pts []wall.Point, fill string) {
	c.path(pts)
	c.dc.ClosePath()
	c.dc.SetHexColor(fill)
	c.dc.Fill()
}

func (c *ggCanvas) Circle(cx, cy, r float64, fill string) {
	c.dc.DrawCircle(cx, cy, r)
	c.dc.SetHexColor(fill)
	c.dc.Fill()
}

func (c *ggCanvas) Polyline(pts []wall.Point, stroke string, width float64) {
	c.path(pts)
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.SetLineCapRound()
	c.dc.Stroke()
}

func (c *ggCanvas) Text(s string, x, y, size, rotation float64, fill string) {
	c.dc.Push()
	defer c.dc.Pop()
	if face := labelFace(size); face != nil {
		c.dc.SetFontFace(face)
	}
	c.dc.SetHexColor(fill)
	if rotation != 0 {
		c.dc.RotateAbout(gg.Radians(-rotation), x, y)
	}
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (c *ggCanvas) path(pts []wall.Point) {
	c.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
			continue
		}
		c.dc.LineTo(p.X, p.Y)
	}
}

var (
	boldFont     *truetype.Font
	boldFontOnce sync.Once
)

// labelFace returns the embedded Go Bold face at size pixels, or nil if the
// font cannot be parsed (gg then keeps its built-in face).
func labelFace(size float64) font.Face {
	boldFontOnce.Do(func() {
		boldFont, _ = truetype.Parse(gobold.TTF)
	})
	if boldFont == nil {
		return nil
	}
	return truetype.NewFace(boldFont, &truetype.Options{Size: size})
}
