package config

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/perfwall/pkg/wall"
)

// Keys accepted by ParseValues. They match the field names of the JSON form
// of wall.Params, with the shape flattened into cellShape and polygonSides.
const (
	KeyWallWidth             = "wallWidth"
	KeyWallHeight            = "wallHeight"
	KeyPanelWidth            = "panelWidth"
	KeyPanelGap              = "panelGap"
	KeyVerticalPanelDivision = "verticalPanelDivision"
	KeyCellSize              = "cellSize"
	KeyCellSizeRounding      = "cellSizeRounding"
	KeyMaxCellScale          = "maxCellScale"
	KeyCellShape             = "cellShape"
	KeyPolygonSides          = "polygonSides"
	KeyCellRotation          = "cellRotation"
	KeyInvert                = "invert"
	KeyPanelMaterial         = "panelMaterial"
	KeyOffsetFromEdges       = "offsetFromEdges"
)

// ParseValues builds parameters from untyped key/value input.
//
// It never fails. Each missing, unparseable, non-finite or out-of-range
// value is replaced by its default, and the result always passes
// wall.Params.Validate. Zero is kept wherever zero is a legal value (for
// example panelGap or cellRotation).
func ParseValues(values map[string]string) wall.Params {
	d := wall.Defaults()
	p := wall.Params{
		WallWidth:             floatOr(values, KeyWallWidth, d.WallWidth, gt0),
		WallHeight:            floatOr(values, KeyWallHeight, d.WallHeight, gt0),
		PanelWidth:            floatOr(values, KeyPanelWidth, d.PanelWidth, gt0),
		PanelGap:              floatOr(values, KeyPanelGap, d.PanelGap, ge0),
		VerticalPanelDivision: intOr(values, KeyVerticalPanelDivision, d.VerticalPanelDivision, 1),
		CellSize:              floatOr(values, KeyCellSize, d.CellSize, gt0),
		CellSizeRounding:      floatOr(values, KeyCellSizeRounding, d.CellSizeRounding, gt0),
		MaxCellScale:          floatOr(values, KeyMaxCellScale, d.MaxCellScale, func(v float64) bool { return v >= wall.MinCellScale }),
		CellRotation:          floatOr(values, KeyCellRotation, d.CellRotation, nil),
		Invert:                boolOr(values, KeyInvert, d.Invert),
		PanelMaterial:         stringOr(values, KeyPanelMaterial, d.PanelMaterial),
		OffsetFromEdges:       floatOr(values, KeyOffsetFromEdges, d.OffsetFromEdges, ge0),
	}

	p.Shape = d.Shape
	if kind, err := wall.ParseShapeKind(values[KeyCellShape]); err == nil {
		p.Shape.Kind = kind
	}
	p.Shape.Sides = intOr(values, KeyPolygonSides, d.Shape.Sides, wall.MinPolygonSides)

	if p.PanelGap >= p.PanelWidth {
		p.PanelGap = d.PanelGap
		if p.PanelGap >= p.PanelWidth {
			p.PanelGap = 0
		}
	}
	return p
}

// ParseQuery is ParseValues for URL query strings and form bodies. Only the
// first value of each key is used.
func ParseQuery(q url.Values) wall.Params {
	flat := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	return ParseValues(flat)
}

// Values flattens p into the key/value form accepted by ParseValues.
func Values(p wall.Params) map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		KeyWallWidth:             f(p.WallWidth),
		KeyWallHeight:            f(p.WallHeight),
		KeyPanelWidth:            f(p.PanelWidth),
		KeyPanelGap:              f(p.PanelGap),
		KeyVerticalPanelDivision: strconv.Itoa(p.VerticalPanelDivision),
		KeyCellSize:              f(p.CellSize),
		KeyCellSizeRounding:      f(p.CellSizeRounding),
		KeyMaxCellScale:          f(p.MaxCellScale),
		KeyCellShape:             p.Shape.Kind.String(),
		KeyPolygonSides:          strconv.Itoa(p.Shape.Sides),
		KeyCellRotation:          f(p.CellRotation),
		KeyInvert:                strconv.FormatBool(p.Invert),
		KeyPanelMaterial:         p.PanelMaterial,
		KeyOffsetFromEdges:       f(p.OffsetFromEdges),
	}
}

func gt0(v float64) bool { return v > 0 }
func ge0(v float64) bool { return v >= 0 }

func floatOr(values map[string]string, key string, def float64, ok func(float64) bool) float64 {
	s, present := values[key]
	if !present {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	if ok != nil && !ok(v) {
		return def
	}
	return v
}

func intOr(values map[string]string, key string, def, lo int) int {
	s, present := values[key]
	if !present {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < lo {
		return def
	}
	return v
}

func boolOr(values map[string]string, key string, def bool) bool {
	s, present := values[key]
	if !present {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no", "":
		return false
	}
	return def
}

func stringOr(values map[string]string, key, def string) string {
	if s := strings.TrimSpace(values[key]); s != "" {
		return s
	}
	return def
}
