package sink

import (
	"encoding/json"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/render/finish"
	"github.com/matzehuels/perfwall/pkg/render/scene"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	scene     bool
	breakdown *cost.Breakdown
	indent    bool
}

// WithJSONScene adds the scene geometry and the edge flaps of every panel.
func WithJSONScene() JSONOption { return func(r *jsonRenderer) { r.scene = true } }

// WithJSONBreakdown uses b instead of pricing the layout again.
func WithJSONBreakdown(b cost.Breakdown) JSONOption {
	return func(r *jsonRenderer) { r.breakdown = &b }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Params         wall.Params    `json:"params"`
	Partition      wall.Partition `json:"partition"`
	Finish         finish.Finish  `json:"finish"`
	Breakdown      cost.Breakdown `json:"breakdown"`
	TotalHoleCount int            `json:"totalHoleCount"`
	Panels         []jsonPanel    `json:"panels"`
	Scene          *scene.Scene   `json:"scene,omitempty"`
}

type jsonPanel struct {
	wall.Panel
	Flaps []scene.Flap `json:"flaps,omitempty"`
}

// RenderJSON exports the layout tree for 3D viewers and other tools. Cell
// coordinates stay in each panel's local frame; panel centers are relative
// to the wall center.
func RenderJSON(l wall.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Params:         l.Params,
		Partition:      l.Partition,
		Finish:         finish.For(l.Params),
		TotalHoleCount: l.TotalHoleCount,
		Panels:         make([]jsonPanel, len(l.Panels)),
	}
	if r.breakdown != nil {
		out.Breakdown = *r.breakdown
	} else {
		out.Breakdown = cost.EstimateLayout(l)
	}
	for i, p := range l.Panels {
		if p.Cells == nil {
			p.Cells = []wall.Cell{}
		}
		out.Panels[i] = jsonPanel{Panel: p}
		if r.scene {
			out.Panels[i].Flaps = scene.Flaps(p.Width, p.Height)
		}
	}
	if r.scene {
		sc := scene.Build(l.Params)
		out.Scene = &sc
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
