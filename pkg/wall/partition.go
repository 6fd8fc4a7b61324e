package wall

import "math"

// Partition is the panel grid of a wall: how many columns and rows, and how
// wide and tall each panel is. It is shared by the layout engine and the
// cost estimator so both see the same panel area.
//
// All columns except the last are RegularWidth wide. The last column absorbs
// whatever is left of the wall, so LastWidth may be narrow, zero or even
// negative when PanelGap eats the remainder. No clamping is applied; a
// non-positive column simply carries no cells.
type Partition struct {
	Columns      int     `json:"columns"`
	Rows         int     `json:"rows"`
	Pitch        float64 `json:"pitch"` // PanelWidth: column spacing including the gap
	Gap          float64 `json:"gap"`
	RegularWidth float64 `json:"regularWidth"`
	LastWidth    float64 `json:"lastWidth"`
	PanelHeight  float64 `json:"panelHeight"`
	WallWidth    float64 `json:"wallWidth"`
	WallHeight   float64 `json:"wallHeight"`
}

// NewPartition divides the wall described by p into panels.
func NewPartition(p Params) Partition {
	cols := int(math.Ceil(p.WallWidth / p.PanelWidth))
	rows := p.VerticalPanelDivision
	return Partition{
		Columns:      cols,
		Rows:         rows,
		Pitch:        p.PanelWidth,
		Gap:          p.PanelGap,
		RegularWidth: p.PanelWidth - p.PanelGap,
		LastWidth:    p.WallWidth - float64(cols-1)*p.PanelWidth - p.PanelGap,
		PanelHeight:  p.WallHeight/float64(rows) - p.PanelGap,
		WallWidth:    p.WallWidth,
		WallHeight:   p.WallHeight,
	}
}

// Count returns the total number of panels.
func (pt Partition) Count() int {
	return pt.Columns * pt.Rows
}

// ColumnWidth returns the width of column i.
func (pt Partition) ColumnWidth(i int) float64 {
	if i == pt.Columns-1 {
		return pt.LastWidth
	}
	return pt.RegularWidth
}

// CenterX returns the horizontal center of column i relative to the wall
// center.
func (pt Partition) CenterX(i int) float64 {
	return -pt.WallWidth/2 + float64(i)*pt.Pitch + pt.ColumnWidth(i)/2 + pt.Gap/2
}

// CenterY returns the vertical center of row j relative to the wall center.
// Row 0 is the bottom row.
func (pt Partition) CenterY(j int) float64 {
	return (float64(j) - float64(pt.Rows)/2 + 0.5) * (pt.PanelHeight + pt.Gap)
}

// Area returns the total panel surface: the sum over columns of column
// width × panel height × rows.
func (pt Partition) Area() float64 {
	var area float64
	for i := 0; i < pt.Columns; i++ {
		area += pt.ColumnWidth(i) * pt.PanelHeight * float64(pt.Rows)
	}
	return area
}

// Span returns the sum of all column widths plus one gap per column. For
// any partition this reconstructs the wall width.
func (pt Partition) Span() float64 {
	var sum float64
	for i := 0; i < pt.Columns; i++ {
		sum += pt.ColumnWidth(i) + pt.Gap
	}
	return sum
}
