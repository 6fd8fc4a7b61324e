package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func buildLayout(t *testing.T, p wall.Params, img *raster.Image) wall.Layout {
	t.Helper()
	l, err := wall.Build(p, img)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func TestRenderSVGHoles(t *testing.T) {
	tests := []struct {
		name  string
		shape wall.Shape
		tag   string
	}{
		{"square", wall.SquareShape(), "<polygon"},
		{"polygon", wall.PolygonShape(6), "<polygon"},
		{"circle", wall.CircleShape(), "<circle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := wall.Defaults()
			p.WallWidth, p.WallHeight = 2, 1
			p.PanelWidth = 1
			p.VerticalPanelDivision = 1
			p.CellSize = 0.25
			p.Shape = tt.shape
			l := buildLayout(t, p, raster.Uniform(8, 8, 128))

			svg := string(RenderSVG(l))
			if got := strings.Count(svg, tt.tag); got != l.TotalHoleCount {
				t.Errorf("%s count = %d, want %d", tt.tag, got, l.TotalHoleCount)
			}
			if got := strings.Count(svg, `<g id="panel-`); got != len(l.Panels) {
				t.Errorf("panel groups = %d, want %d", got, len(l.Panels))
			}
		})
	}
}

func TestRenderSVGScene(t *testing.T) {
	l := buildLayout(t, wall.Defaults(), nil)

	bare := string(RenderSVG(l))
	if strings.Contains(bare, "<text") || strings.Contains(bare, "<polyline") {
		t.Error("bare elevation contains scene elements")
	}

	full := string(RenderSVG(l, WithScene(true)))
	for _, want := range []string{">5.0m</text>", ">4.0m</text>", "rotate(-90.0", "<polyline"} {
		if !strings.Contains(full, want) {
			t.Errorf("scene SVG missing %q", want)
		}
	}
	if !strings.Contains(full, `fill="#888888"`) {
		t.Error("panels not filled with the brushed-metal finish")
	}
}

func TestRenderSVGSize(t *testing.T) {
	l := buildLayout(t, wall.Defaults(), nil)
	svg := string(RenderSVG(l, WithPixelsPerMeter(100)))
	if !strings.Contains(svg, `width="520" height="420"`) {
		t.Errorf("unexpected size: %s", svg[:strings.Index(svg, "\n")])
	}

	p := wall.Defaults()
	p.WallWidth = 100
	l = buildLayout(t, p, nil)
	svg = string(RenderSVG(l))
	if !strings.Contains(svg, `width="8192"`) {
		t.Errorf("large wall not capped: %s", svg[:strings.Index(svg, "\n")])
	}
}

func TestRenderPNG(t *testing.T) {
	p := wall.Defaults()
	p.PanelMaterial = "gold"
	l := buildLayout(t, p, nil)

	data, err := RenderPNG(l)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1040 || b.Dy() != 840 {
		t.Errorf("size = %dx%d, want 1040x840", b.Dx(), b.Dy())
	}

	// Panel (0,0) is centered at (-1.75, -1) in wall coordinates.
	if got := color.NRGBAModel.Convert(img.At(170, 620)).(color.NRGBA); got != (color.NRGBA{0xff, 0xd7, 0x00, 0xff}) {
		t.Errorf("panel pixel = %v, want gold", got)
	}
	if got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestRenderPNGHolesShowBackground(t *testing.T) {
	p := wall.Defaults()
	p.WallWidth, p.WallHeight = 1, 1
	p.PanelWidth = 1
	p.PanelGap = 0
	p.VerticalPanelDivision = 1
	p.CellSize = 0.5
	p.OffsetFromEdges = 0
	l := buildLayout(t, p, raster.Uniform(4, 4, 255))

	data, err := RenderPNG(l, WithBackground("#000000"))
	if err != nil {
		t.Fatal(err)
	}
	img, _ := png.Decode(bytes.NewReader(data))

	// Four full-size 0.5 m holes; (0.25, 0.25) is the center of one of them.
	x, y := int((0.25+0.6)*200), int((0.6-0.25)*200)
	if got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA); got != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Errorf("hole pixel = %v, want background", got)
	}
}

func TestRenderJSON(t *testing.T) {
	p := wall.Defaults()
	p.PanelMaterial = "copper"
	l := buildLayout(t, p, raster.Gradient(64, 48))

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		Finish struct {
			Key   string `json:"key"`
			Color string `json:"color"`
		} `json:"finish"`
		Breakdown struct {
			Material  string  `json:"material"`
			HoleCount int     `json:"holeCount"`
			Total     float64 `json:"total"`
		} `json:"breakdown"`
		TotalHoleCount int `json:"totalHoleCount"`
		Panels         []struct {
			I     int               `json:"i"`
			Cells []json.RawMessage `json:"cells"`
			Flaps []json.RawMessage `json:"flaps"`
		} `json:"panels"`
		Scene json.RawMessage `json:"scene"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Finish.Key != "copper" || out.Finish.Color != "#ca7245" {
		t.Errorf("finish = %+v", out.Finish)
	}
	if out.Breakdown.Material != "copper" || out.Breakdown.HoleCount != l.TotalHoleCount || out.Breakdown.Total <= 0 {
		t.Errorf("breakdown = %+v", out.Breakdown)
	}
	if len(out.Panels) != 8 {
		t.Fatalf("panels = %d", len(out.Panels))
	}
	var cells int
	for _, p := range out.Panels {
		cells += len(p.Cells)
		if p.Flaps != nil {
			t.Error("flaps present without WithJSONScene")
		}
	}
	if cells != out.TotalHoleCount {
		t.Errorf("cells = %d, totalHoleCount = %d", cells, out.TotalHoleCount)
	}
	if out.Scene != nil {
		t.Error("scene present without WithJSONScene")
	}
}

func TestRenderJSONScene(t *testing.T) {
	l := buildLayout(t, wall.Defaults(), nil)
	data, err := RenderJSON(l, WithJSONScene(), WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"flaps"`, `"side": "top"`, `"scene"`, `"text": "5.0m"`, `"cells": []`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON missing %s", want)
		}
	}
}
