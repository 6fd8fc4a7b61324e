package cost_test

import (
	"fmt"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func ExampleEstimate() {
	params := wall.Defaults()
	params.PanelMaterial = "gold"

	b := cost.Estimate(params, wall.NewPartition(params), 200)
	fmt.Printf("area %.2f m², holes %.1f m\n", b.PanelArea, b.TotalHoleLength)
	fmt.Printf("panels €%.2f + holes €%.2f = €%.2f\n", b.PanelCost, b.HoleCost, b.Total)
	// Output:
	// area 18.72 m², holes 80.0 m
	// panels €4680.00 + holes €2400.00 = €7080.00
}

func ExamplePerimeter() {
	fmt.Printf("%.2f\n", cost.Perimeter(wall.PolygonShape(6), 0.1))
	// Output: 0.30
}
