package sink_test

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/render/sink"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func ExampleRenderJSON() {
	p := wall.Defaults()
	p.PanelMaterial = "gold"
	l, _ := wall.Build(p, nil)

	data, _ := sink.RenderJSON(l, sink.WithJSONBreakdown(cost.EstimateLayout(l)))

	var out struct {
		Finish struct {
			Color     string  `json:"color"`
			Roughness float64 `json:"roughness"`
		} `json:"finish"`
		Breakdown struct {
			Total float64 `json:"total"`
		} `json:"breakdown"`
		Panels []json.RawMessage `json:"panels"`
	}
	_ = json.Unmarshal(data, &out)
	fmt.Println(out.Finish.Color, out.Finish.Roughness)
	fmt.Printf("%d panels, €%.2f\n", len(out.Panels), out.Breakdown.Total)
	// Output:
	// #ffd700 0.1
	// 8 panels, €4680.00
}
