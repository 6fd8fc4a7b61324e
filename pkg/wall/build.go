package wall

import (
	"math"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/raster"
)

// Cell is one perforation, positioned in its panel's local frame (origin at
// the panel center, +Y up).
type Cell struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Size       float64 `json:"size"`
	Rotation   float64 `json:"rotation"`
	Brightness float64 `json:"brightness"`
}

// Panel is one rectangular sheet of the wall.
type Panel struct {
	I      int     `json:"i"` // column
	J      int     `json:"j"` // row, 0 at the bottom
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x"` // center, relative to the wall center
	Y      float64 `json:"y"`
	Cells  []Cell  `json:"cells"`
}

// Layout is the complete result of one layout computation.
type Layout struct {
	Params         Params    `json:"params"`
	Partition      Partition `json:"partition"`
	Panels         []Panel   `json:"panels"`
	TotalHoleCount int       `json:"totalHoleCount"`
}

// Build computes the panel grid and, when img is non-nil, the cell grid of
// every panel. Panels are emitted column by column (i outer, j inner) and
// cells likewise within each panel.
//
// Build validates p first and returns ErrCodeInvalidParameter for unusable
// parameters. Panels whose geometry leaves no room for cells, or whose cell
// sizes would not be finite, are emitted with zero cells.
func Build(p Params, img *raster.Image) (Layout, error) {
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}
	if img != nil && !img.Valid() {
		return Layout{}, errors.New(errors.ErrCodeInvalidImage, "image buffer does not match %dx%d", img.Width, img.Height)
	}

	pt := NewPartition(p)
	layout := Layout{
		Params:    p,
		Partition: pt,
		Panels:    make([]Panel, 0, pt.Count()),
	}
	for i := 0; i < pt.Columns; i++ {
		for j := 0; j < pt.Rows; j++ {
			panel := Panel{
				I:      i,
				J:      j,
				Width:  pt.ColumnWidth(i),
				Height: pt.PanelHeight,
				X:      pt.CenterX(i),
				Y:      pt.CenterY(j),
			}
			if img != nil {
				cells, err := panelCells(p, panel, img)
				if err != nil {
					return Layout{}, err
				}
				panel.Cells = cells
			}
			layout.TotalHoleCount += len(panel.Cells)
			layout.Panels = append(layout.Panels, panel)
		}
	}
	return layout, nil
}

// CellGrid returns how many cells fit across and up a panel of the given
// size, and the local coordinates of the center of cell (0, 0). Zero counts
// mean the panel is too small once the edge offset is removed.
func CellGrid(p Params, width, height float64) (holesX, holesY int, startX, startY float64) {
	offset := p.OffsetFromEdges * p.CellSize
	availW := width - 2*offset
	availH := height - 2*offset
	if !(availW > 0) || !(availH > 0) {
		return 0, 0, 0, 0
	}
	holesX = int(math.Floor(availW / p.CellSize))
	holesY = int(math.Floor(availH / p.CellSize))
	startX = -width/2 + offset + (availW-float64(holesX)*p.CellSize)/2 + p.CellSize/2
	startY = -height/2 + offset + (availH-float64(holesY)*p.CellSize)/2 + p.CellSize/2
	return holesX, holesY, startX, startY
}

func panelCells(p Params, panel Panel, img *raster.Image) ([]Cell, error) {
	holesX, holesY, startX, startY := CellGrid(p, panel.Width, panel.Height)
	if holesX <= 0 || holesY <= 0 {
		return nil, nil
	}

	rowHeight := p.WallHeight / float64(p.VerticalPanelDivision)
	region := raster.RegionFor(img,
		float64(panel.I)*p.PanelWidth/p.WallWidth,
		float64(panel.J)*rowHeight/p.WallHeight,
		panel.Width/p.WallWidth,
		panel.Height/p.WallHeight,
	)
	sampler := raster.NewSampler(img, region, holesX, holesY, p.Invert)

	cells := make([]Cell, 0, holesX*holesY)
	for a := 0; a < holesX; a++ {
		for b := 0; b < holesY; b++ {
			brightness := sampler.Sample(a, b)
			size, err := RoundTo(CellSizeFor(p, brightness), p.CellSizeRounding)
			if err != nil {
				return nil, err
			}
			if !finite(size) {
				return nil, nil
			}
			cells = append(cells, Cell{
				X:          startX + float64(a)*p.CellSize,
				Y:          startY + float64(b)*p.CellSize,
				Z:          CellZ,
				Size:       size,
				Rotation:   p.CellRotation,
				Brightness: brightness,
			})
		}
	}
	return cells, nil
}

// CellSizeFor maps a brightness in [0,1] to an unrounded cell size between
// CellSize×MinCellScale and CellSize×MaxCellScale.
func CellSizeFor(p Params, brightness float64) float64 {
	return p.CellSize * (MinCellScale + brightness*(p.MaxCellScale-MinCellScale))
}

// RoundTo rounds v to the nearest multiple of step. A zero step fails with
// ErrCodeDivisionByZero.
func RoundTo(v, step float64) (float64, error) {
	if step == 0 {
		return 0, errors.New(errors.ErrCodeDivisionByZero, "rounding step is zero")
	}
	return math.Round(v/step) * step, nil
}
