// Package cost prices a wall from its geometry.
//
// The estimate has two parts: sheet material charged per square meter of
// panel surface, and cutting charged per meter of perforation outline. Both
// prices come from a fixed material table; see [Lookup].
//
//	layout, _ := wall.Build(params, img)
//	b := cost.EstimateLayout(layout)
//	fmt.Printf("%.2f €\n", b.Total)
package cost

import (
	"fmt"
	"math"

	"github.com/matzehuels/perfwall/pkg/wall"
)

// Breakdown is a complete price estimate. It is recomputed from scratch on
// every call and never updated in place.
type Breakdown struct {
	Material        string  `json:"material"`        // resolved material key
	PanelArea       float64 `json:"panelArea"`       // m²
	TotalHoleLength float64 `json:"totalHoleLength"` // m
	HoleCount       int     `json:"holeCount"`
	PanelCost       float64 `json:"panelCost"`
	HoleCost        float64 `json:"holeCost"`
	Total           float64 `json:"total"`
	MaterialPrice   float64 `json:"materialPrice"` // €/m²
	HolePrice       float64 `json:"holePrice"`     // €/m
}

// Perimeter returns the outline length of one perforation of the given
// size: 4s for squares, πs for circles, and N·s·sin(π/N) for an N-gon
// inscribed in a circle of diameter s.
func Perimeter(shape wall.Shape, size float64) float64 {
	switch shape.Kind {
	case wall.Circle:
		return math.Pi * size
	case wall.Polygon:
		n := float64(shape.Sides)
		return n * size * math.Sin(math.Pi/n)
	default:
		return 4 * size
	}
}

// Estimate prices a wall given its partition and the number of holes.
//
// Every hole is priced at the nominal CellSize, not at its rounded
// per-cell size.
func Estimate(p wall.Params, pt wall.Partition, holes int) Breakdown {
	m, _ := Lookup(p.PanelMaterial)

	area := pt.Area()
	length := Perimeter(p.Shape, p.CellSize) * float64(holes)
	panelCost := area * m.PricePerSquareMeter
	holeCost := length * m.PricePerMeterOfHoles

	return Breakdown{
		Material:        m.Key,
		PanelArea:       area,
		TotalHoleLength: length,
		HoleCount:       holes,
		PanelCost:       panelCost,
		HoleCost:        holeCost,
		Total:           panelCost + holeCost,
		MaterialPrice:   m.PricePerSquareMeter,
		HolePrice:       m.PricePerMeterOfHoles,
	}
}

// EstimateLayout prices a computed layout.
func EstimateLayout(l wall.Layout) Breakdown {
	return Estimate(l.Params, l.Partition, l.TotalHoleCount)
}

// Summary returns the order summary lines shown before checkout.
func Summary(p wall.Params, b Breakdown) []string {
	pt := wall.NewPartition(p)
	return []string{
		fmt.Sprintf("Wall Dimensions: %gm × %gm", p.WallWidth, p.WallHeight),
		fmt.Sprintf("Panel Material: %s", b.Material),
		fmt.Sprintf("Cell Shape: %s", p.Shape.Name()),
		fmt.Sprintf("Total Panels: %d", pt.Count()),
		fmt.Sprintf("Total Area: %.2f m²", b.PanelArea),
		fmt.Sprintf("Total Holes: %.2f m", b.TotalHoleLength),
		fmt.Sprintf("Total Cost: €%.2f", b.Total),
	}
}
