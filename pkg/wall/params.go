package wall

import (
	"math"

	"github.com/matzehuels/perfwall/pkg/errors"
)

// MinCellScale is the smallest cell size as a fraction of CellSize. A fully
// dark sample still cuts a hole this large.
const MinCellScale = 0.07

// CellZ is the stand-off of every cell in front of the panel surface, in
// meters.
const CellZ = 0.01

// DefaultMaterial is the material key used when none is given or the key is
// unknown.
const DefaultMaterial = "brushed-metal"

// Params describes one wall configuration. All lengths are in meters.
//
// Params is a value type: the layout engine never mutates it, and every
// change produces a fresh layout.
type Params struct {
	WallWidth             float64 `json:"wallWidth" yaml:"wallWidth" toml:"wallWidth"`
	WallHeight            float64 `json:"wallHeight" yaml:"wallHeight" toml:"wallHeight"`
	PanelWidth            float64 `json:"panelWidth" yaml:"panelWidth" toml:"panelWidth"`
	PanelGap              float64 `json:"panelGap" yaml:"panelGap" toml:"panelGap"`
	VerticalPanelDivision int     `json:"verticalPanelDivision" yaml:"verticalPanelDivision" toml:"verticalPanelDivision"`
	CellSize              float64 `json:"cellSize" yaml:"cellSize" toml:"cellSize"`
	CellSizeRounding      float64 `json:"cellSizeRounding" yaml:"cellSizeRounding" toml:"cellSizeRounding"`
	MaxCellScale          float64 `json:"maxCellScale" yaml:"maxCellScale" toml:"maxCellScale"`
	Shape                 Shape   `json:"cellShape" yaml:"cellShape" toml:"cellShape"`
	CellRotation          float64 `json:"cellRotation" yaml:"cellRotation" toml:"cellRotation"` // degrees
	Invert                bool    `json:"invert" yaml:"invert" toml:"invert"`
	PanelMaterial         string  `json:"panelMaterial" yaml:"panelMaterial" toml:"panelMaterial"`
	OffsetFromEdges       float64 `json:"offsetFromEdges" yaml:"offsetFromEdges" toml:"offsetFromEdges"` // multiples of CellSize
}

// Defaults returns the stock configuration: a 5×4 m wall of 1.5 m panels
// split once vertically, with 10 cm square cells.
func Defaults() Params {
	return Params{
		WallWidth:             5,
		WallHeight:            4,
		PanelWidth:            1.5,
		PanelGap:              0.05,
		VerticalPanelDivision: 2,
		CellSize:              0.1,
		CellSizeRounding:      0.001,
		MaxCellScale:          1.0,
		Shape:                 Shape{Kind: Square, Sides: 6},
		CellRotation:          0,
		Invert:                false,
		PanelMaterial:         DefaultMaterial,
		OffsetFromEdges:       0.1,
	}
}

// Validate reports the first parameter that would make the layout
// meaningless. Every failure carries ErrCodeInvalidParameter.
//
// The material key is not validated; unknown keys fall back to the default
// material wherever they are resolved.
func (p Params) Validate() error {
	checks := []struct {
		ok   bool
		name string
		want string
		got  any
	}{
		{positive(p.WallWidth), "wallWidth", "> 0", p.WallWidth},
		{positive(p.WallHeight), "wallHeight", "> 0", p.WallHeight},
		{positive(p.PanelWidth), "panelWidth", "> 0", p.PanelWidth},
		{finite(p.PanelGap) && p.PanelGap >= 0, "panelGap", ">= 0", p.PanelGap},
		{p.PanelGap < p.PanelWidth, "panelGap", "< panelWidth", p.PanelGap},
		{p.VerticalPanelDivision >= 1, "verticalPanelDivision", ">= 1", p.VerticalPanelDivision},
		{positive(p.CellSize), "cellSize", "> 0", p.CellSize},
		{positive(p.CellSizeRounding), "cellSizeRounding", "> 0", p.CellSizeRounding},
		{finite(p.MaxCellScale) && p.MaxCellScale >= MinCellScale, "maxCellScale", ">= 0.07", p.MaxCellScale},
		{finite(p.CellRotation), "cellRotation", "finite", p.CellRotation},
		{finite(p.OffsetFromEdges) && p.OffsetFromEdges >= 0, "offsetFromEdges", ">= 0", p.OffsetFromEdges},
	}
	for _, c := range checks {
		if !c.ok {
			return errors.New(errors.ErrCodeInvalidParameter, "%s must be %s, got %v", c.name, c.want, c.got)
		}
	}
	return p.Shape.Validate()
}

// Material returns the material key, substituting the default for an empty
// value.
func (p Params) Material() string {
	if p.PanelMaterial == "" {
		return DefaultMaterial
	}
	return p.PanelMaterial
}

// Rows returns the number of panel rows.
func (p Params) Rows() int {
	return p.VerticalPanelDivision
}

func positive(v float64) bool { return finite(v) && v > 0 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
