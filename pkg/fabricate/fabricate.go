// Package fabricate exports cutting geometry for the panels of a wall.
//
// Each panel becomes a flat blank in millimetres: the panel face plus the
// four edge flaps unfolded outward, with the corner squares left out so the
// flaps can be bent without overlapping. Every perforation is subtracted
// from the face. The blank is written as DXF for laser or CNC cutting and,
// optionally, extruded to the sheet thickness and written as STL.
//
// Geometry is built with signed distance functions (github.com/deadsy/sdfx)
// and traced with marching squares, so the output resolution is a choice:
// a finer [Options.Resolution] resolves small holes at the cost of time.
package fabricate

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// mm per wall unit.
const mm = 1000.0

const (
	DefaultResolution = 1.0 // mm per marching-squares cell
	DefaultMeshCells  = 200
)

// Options controls an export run.
type Options struct {
	Dir        string      // output directory, created if missing
	Resolution float64     // mm per 2D mesh cell
	STL        bool        // also write an extruded STL per panel
	MeshCells  int         // marching-cubes cells along the longest STL axis
	Thickness  float64     // sheet thickness in mm for the STL
	Logger     *log.Logger // optional
}

// ValidateAndSetDefaults checks the options and fills in zero values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.MeshCells == 0 {
		o.MeshCells = DefaultMeshCells
	}
	if o.Thickness == 0 {
		o.Thickness = scene.FlapThickness * mm
	}
	if !(o.Resolution > 0) || !(o.Thickness > 0) || o.MeshCells < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "resolution, thickness and mesh cells must be positive")
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// File is one written output.
type File struct {
	Panel string `json:"panel"` // "i-j"
	Path  string `json:"path"`
	Holes int    `json:"holes"`
}

// Blank returns the flat cutting outline of panel p in millimetres,
// centered on the panel center.
func Blank(p wall.Panel, shape wall.Shape) (sdf.SDF2, error) {
	if !(p.Width > 0) || !(p.Height > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "panel %d-%d has no area", p.I, p.J)
	}
	w, h := p.Width*mm, p.Height*mm
	d := scene.FlapDepth * mm

	body := sdf.Union2D(
		sdf.Box2D(v2.Vec{X: w, Y: h + 2*d}, 0),
		sdf.Box2D(v2.Vec{X: w + 2*d, Y: h}, 0),
	)
	if len(p.Cells) == 0 {
		return body, nil
	}

	holes := make([]sdf.SDF2, 0, len(p.Cells))
	for _, c := range p.Cells {
		hole, err := cutout(shape, c)
		if err != nil {
			return nil, fmt.Errorf("panel %d-%d: %w", p.I, p.J, err)
		}
		holes = append(holes, hole)
	}
	return sdf.Difference2D(body, sdf.Union2D(holes...)), nil
}

func cutout(shape wall.Shape, c wall.Cell) (sdf.SDF2, error) {
	at := sdf.Translate2d(v2.Vec{X: c.X * mm, Y: c.Y * mm})
	if shape.Kind == wall.Circle {
		s, err := sdf.Circle2D(c.Size * mm / 2)
		if err != nil {
			return nil, err
		}
		return sdf.Transform2D(s, at), nil
	}
	outline := shape.Outline(c.Size*mm, c.Rotation)
	verts := make([]v2.Vec, len(outline))
	for i, pt := range outline {
		verts[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	s, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, err
	}
	return sdf.Transform2D(s, at), nil
}

// Export writes one DXF (and optionally one STL) per panel of l into
// opts.Dir. Panels without area are skipped.
func Export(ctx context.Context, l wall.Layout, opts Options) ([]File, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	var files []File
	for _, p := range l.Panels {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		if !(p.Width > 0) || !(p.Height > 0) {
			opts.Logger.Warn("skipping panel without area", "panel", panelName(p), "width", p.Width)
			continue
		}

		blank, err := Blank(p, l.Params.Shape)
		if err != nil {
			return files, err
		}

		name := panelName(p)
		dxfPath := filepath.Join(opts.Dir, "panel-"+name+".dxf")
		opts.Logger.Info("writing blank", "panel", name, "holes", len(p.Cells), "path", dxfPath)
		render.ToDXF(blank, dxfPath, render.NewMarchingSquaresQuadtree(meshCells(blank, opts.Resolution)))
		files = append(files, File{Panel: name, Path: dxfPath, Holes: len(p.Cells)})

		if opts.STL {
			stlPath := filepath.Join(opts.Dir, "panel-"+name+".stl")
			opts.Logger.Info("writing sheet", "panel", name, "path", stlPath)
			render.ToSTL(sdf.Extrude3D(blank, opts.Thickness), stlPath, render.NewMarchingCubesUniform(opts.MeshCells))
			files = append(files, File{Panel: name, Path: stlPath, Holes: len(p.Cells)})
		}
	}
	return files, nil
}

func panelName(p wall.Panel) string {
	return fmt.Sprintf("%d-%d", p.I, p.J)
}

// meshCells converts a resolution in mm to a cell count along the longest
// side of s.
func meshCells(s sdf.SDF2, resolution float64) int {
	bb := s.BoundingBox()
	size := bb.Size()
	return max(1, int(math.Ceil(max(size.X, size.Y)/resolution)))
}
