package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// RenderSVG renders the front elevation of l as an SVG document.
func RenderSVG(l wall.Layout, opts ...Option) []byte {
	o := newOptions(opts...)

	sc := scene.Build(l.Params)
	f := newFrame(l, sc, o)

	var body bytes.Buffer
	draw(&svgCanvas{buf: &body}, l, sc, f, o)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width(), f.height(), f.width(), f.height())
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(title(l)))
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func title(l wall.Layout) string {
	return fmt.Sprintf("%gm × %gm %s wall, %d panels, %d holes",
		l.Params.WallWidth, l.Params.WallHeight, l.Params.Material(), len(l.Panels), l.TotalHoleCount)
}

type svgCanvas struct {
	buf   *bytes.Buffer
	depth int
}

func (c *svgCanvas) indent() string { return strings.Repeat("  ", c.depth+1) }

func (c *svgCanvas) Begin(id string) {
	fmt.Fprintf(c.buf, "%s<g id=\"%s\">\n", c.indent(), id)
	c.depth++
}

func (c *svgCanvas) End() {
	c.depth--
	fmt.Fprintf(c.buf, "%s</g>\n", c.indent())
}

func (c *svgCanvas) Rect(x, y, w, h float64, fill, stroke string) {
	fmt.Fprintf(c.buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`, c.indent(), x, y, w, h, fill)
	if stroke != "" {
		fmt.Fprintf(c.buf, ` stroke="%s" stroke-width="1"`, stroke)
	}
	c.buf.WriteString("/>\n")
}

func (c *svgCanvas) Polygon(pts []wall.Point, fill string) {
	fmt.Fprintf(c.buf, `%s<polygon points="%s" fill="%s"/>`+"\n", c.indent(), svgPoints(pts), fill)
}

func (c *svgCanvas) Circle(cx, cy, r float64, fill string) {
	fmt.Fprintf(c.buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", c.indent(), cx, cy, r, fill)
}

func (c *svgCanvas) Polyline(pts []wall.Point, stroke string, width float64) {
	fmt.Fprintf(c.buf, `%s<polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		c.indent(), svgPoints(pts), stroke, width)
}

func (c *svgCanvas) Text(s string, x, y, size, rotation float64, fill string) {
	fmt.Fprintf(c.buf, `%s<text x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-weight="bold" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle"`,
		c.indent(), x, y, size, fill)
	if rotation != 0 {
		fmt.Fprintf(c.buf, ` transform="rotate(%.1f %.2f %.2f)"`, -rotation, x, y)
	}
	fmt.Fprintf(c.buf, ">%s</text>\n", html.EscapeString(s))
}

func svgPoints(pts []wall.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}
