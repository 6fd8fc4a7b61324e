package wall_test

import (
	"fmt"

	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func ExampleNewPartition() {
	pt := wall.NewPartition(wall.Defaults())
	fmt.Println("columns:", pt.Columns, "rows:", pt.Rows)
	for i := 0; i < pt.Columns; i++ {
		fmt.Printf("column %d: %.2fm\n", i, pt.ColumnWidth(i))
	}
	fmt.Printf("panel height: %.2fm\n", pt.PanelHeight)
	// Output:
	// columns: 4 rows: 2
	// column 0: 1.45m
	// column 1: 1.45m
	// column 2: 1.45m
	// column 3: 0.45m
	// panel height: 1.95m
}

func ExampleBuild() {
	params := wall.Defaults()
	params.WallWidth, params.WallHeight = 2, 1
	params.PanelWidth = 1
	params.VerticalPanelDivision = 1
	params.CellSize = 0.25
	params.OffsetFromEdges = 0

	layout, err := wall.Build(params, raster.Uniform(4, 2, 255))
	if err != nil {
		panic(err)
	}
	for _, p := range layout.Panels {
		fmt.Printf("panel %d: %.2f×%.2f at x=%.3f, %d cells\n", p.I, p.Width, p.Height, p.X, len(p.Cells))
	}
	fmt.Println("holes:", layout.TotalHoleCount)
	// Output:
	// panel 0: 0.95×0.95 at x=-0.500, 9 cells
	// panel 1: 0.95×0.95 at x=0.500, 9 cells
	// holes: 18
}
