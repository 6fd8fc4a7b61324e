package cost

import (
	"math"
	"testing"

	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// areaPartition returns a single-row partition whose Area() is exactly area.
func areaPartition(area float64) wall.Partition {
	return wall.Partition{Columns: 1, Rows: 1, LastWidth: area, PanelHeight: 1}
}

func TestEstimateGoldExample(t *testing.T) {
	p := wall.Defaults()
	p.PanelMaterial = "gold"
	p.CellSize = 0.1
	p.Shape = wall.SquareShape()

	b := Estimate(p, areaPartition(10), 200)

	if !near(b.PanelCost, 2500) {
		t.Errorf("PanelCost = %v, want 2500", b.PanelCost)
	}
	if !near(b.TotalHoleLength, 80) {
		t.Errorf("TotalHoleLength = %v, want 80", b.TotalHoleLength)
	}
	if !near(b.HoleCost, 2400) {
		t.Errorf("HoleCost = %v, want 2400", b.HoleCost)
	}
	if !near(b.Total, 4900) {
		t.Errorf("Total = %v, want 4900", b.Total)
	}
	if b.Material != "gold" || b.MaterialPrice != 250 || b.HolePrice != 30 {
		t.Errorf("material = %s %v/%v", b.Material, b.MaterialPrice, b.HolePrice)
	}
}

func TestPerimeter(t *testing.T) {
	tests := []struct {
		name  string
		shape wall.Shape
		want  float64
	}{
		{"square", wall.SquareShape(), 0.4},
		{"circle", wall.CircleShape(), math.Pi * 0.1},
		{"hexagon", wall.PolygonShape(6), 0.3},
		{"square polygon", wall.PolygonShape(4), 0.4 * math.Sin(math.Pi/4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Perimeter(tt.shape, 0.1); !near(got, tt.want) {
				t.Errorf("Perimeter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerimeterMatchesOutline(t *testing.T) {
	for _, s := range []wall.Shape{wall.SquareShape(), wall.PolygonShape(5), wall.PolygonShape(12)} {
		pts := s.Outline(0.2, 17)
		var outline float64
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			outline += math.Hypot(b.X-a.X, b.Y-a.Y)
		}
		if !near(outline, Perimeter(s, 0.2)) {
			t.Errorf("%v: outline length %v != perimeter %v", s, outline, Perimeter(s, 0.2))
		}
	}
}

func TestUnknownMaterialFallsBack(t *testing.T) {
	p := wall.Defaults()
	p.PanelMaterial = "unobtainium"
	b := Estimate(p, areaPartition(1), 0)
	if b.Material != "brushed-metal" || !near(b.Total, 150) {
		t.Errorf("fallback = %s total %v, want brushed-metal 150", b.Material, b.Total)
	}

	if _, ok := Lookup("unobtainium"); ok {
		t.Error("Lookup reported unknown key as found")
	}
	if m, ok := Lookup("copper"); !ok || m.PricePerSquareMeter != 190 || m.PricePerMeterOfHoles != 23 {
		t.Errorf("Lookup(copper) = %+v, %v", m, ok)
	}
}

func TestMonotonic(t *testing.T) {
	p := wall.Defaults()
	prev := -1.0
	for holes := 0; holes <= 1000; holes += 100 {
		total := Estimate(p, areaPartition(5), holes).Total
		if total < prev {
			t.Fatalf("total decreased with more holes: %v < %v", total, prev)
		}
		prev = total
	}
	prev = -1.0
	for area := 0.0; area <= 20; area += 2.5 {
		total := Estimate(p, areaPartition(area), 100).Total
		if total < prev {
			t.Fatalf("total decreased with more area: %v < %v", total, prev)
		}
		prev = total
	}
}

func TestEstimateLayoutUsesSharedPartition(t *testing.T) {
	p := wall.Defaults()
	l, err := wall.Build(p, raster.Uniform(50, 40, 100))
	if err != nil {
		t.Fatal(err)
	}
	b := EstimateLayout(l)

	// 3 × 1.45 + 0.45 = 4.8 m of panel width, 1.95 m tall, 2 rows.
	if !near(b.PanelArea, 4.8*1.95*2) {
		t.Errorf("PanelArea = %v, want %v", b.PanelArea, 4.8*1.95*2)
	}
	if b.HoleCount != l.TotalHoleCount {
		t.Errorf("HoleCount = %d, want %d", b.HoleCount, l.TotalHoleCount)
	}
	if !near(b.TotalHoleLength, 0.4*float64(l.TotalHoleCount)) {
		t.Errorf("TotalHoleLength = %v", b.TotalHoleLength)
	}
}

func TestMaterialsTable(t *testing.T) {
	keys := Keys()
	want := []string{"bronze", "brushed-metal", "copper", "dark-steel", "gold", "polished-silver", "titanium"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestSummary(t *testing.T) {
	p := wall.Defaults()
	p.Shape = wall.PolygonShape(6)
	b := Estimate(p, wall.NewPartition(p), 0)
	lines := Summary(p, b)
	want := []string{
		"Wall Dimensions: 5m × 4m",
		"Panel Material: brushed-metal",
		"Cell Shape: Polygon",
		"Total Panels: 8",
		"Total Area: 18.72 m²",
		"Total Holes: 0.00 m",
		"Total Cost: €2808.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
