// Package render turns computed wall layouts into previews.
//
// # Overview
//
// Rendering is a separate stage that consumes a [wall.Layout]; nothing in
// this tree feeds back into the layout math. The subpackages split the work:
//
//   - [finish]: visual surface properties per panel material
//   - [scene]: presentation geometry around the wall (dimension lines,
//     ground line, reference figure, panel flaps)
//   - [sink]: output formats (SVG, PNG, PDF, JSON)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert an SVG document with the external
// rsvg-convert tool (from librsvg). The PDF sink uses it; the PNG sink
// rasterises natively and only falls back to rsvg when asked to.
//
//	svg := sink.RenderSVG(layout, sink.WithDimensions())
//	pdf, err := render.ToPDF(svg)
//
// [wall.Layout]: github.com/matzehuels/perfwall/pkg/wall.Layout
// [finish]: github.com/matzehuels/perfwall/pkg/render/finish
// [scene]: github.com/matzehuels/perfwall/pkg/render/scene
// [sink]: github.com/matzehuels/perfwall/pkg/render/sink
package render
