// Package sink renders a computed [wall.Layout] to output formats.
//
// # Overview
//
// A "sink" turns a layout into bytes. This package provides:
//
//   - SVG: front elevation of the wall, panels filled with the material's
//     finish color and every perforation drawn as its outline
//   - PNG: the same elevation rasterised with fogleman/gg
//   - PDF: the SVG converted by rsvg-convert
//   - JSON: the full layout tree with cost breakdown and finish, for 3D
//     viewers and other collaborators
//
// # Elevation Options
//
// SVG, PNG and PDF share one option set:
//
//   - [WithPixelsPerMeter]: output scale (default 200)
//   - [WithDimensions]: width and height dimension lines with labels
//   - [WithFigure]: a 1.9 m reference figure left of the wall
//   - [WithGround]: the ground line under the wall
//   - [WithBackground]: page color, also used for the holes
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout, sink.WithDimensions(), sink.WithFigure())
//	png, err := sink.RenderPNG(layout, sink.WithPixelsPerMeter(100))
//
// # JSON Output
//
// [RenderJSON] always includes the parameters, partition, panels with their
// cells, the cost breakdown and the finish. [WithJSONScene] adds the scene
// geometry and the edge flaps of every panel.
//
// [wall.Layout]: github.com/matzehuels/perfwall/pkg/wall.Layout
package sink
