// Package wall computes the panel and perforation layout of a wall.
//
// # Overview
//
// A wall of WallWidth × WallHeight meters is cut into columns of PanelWidth
// pitch and VerticalPanelDivision rows. Each panel then carries a grid of
// cells (holes) whose size follows the brightness of the matching region of
// a source image, producing a halftone mosaic across the whole wall.
//
//	params := wall.Defaults()
//	layout, err := wall.Build(params, img)
//
// # Partition
//
// [NewPartition] derives the panel grid. All columns but the last are
// PanelWidth − PanelGap wide; the last column takes whatever remains of the
// wall and is never clamped. The same [Partition] feeds the cost estimator,
// so layout and pricing always agree on panel area.
//
// # Cells
//
// Inside each panel, cells sit on a CellSize grid inset by
// OffsetFromEdges × CellSize from every edge and centered in the space that
// remains. The cell size is
//
//	CellSize × (0.07 + brightness × (MaxCellScale − 0.07))
//
// rounded to the nearest multiple of CellSizeRounding. Without an image
// every panel has zero cells.
//
// # Shapes
//
// [Shape] is a tagged variant: Square, Circle or Polygon with a side count.
// [Shape.Outline] emits the vertex ring used by the render sinks and the
// fabrication exporter.
//
// [Build] is a pure function: it allocates a fresh [Layout] on every call and
// holds no state between calls.
package wall
