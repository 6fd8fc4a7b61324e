// Package finish describes how each panel material looks.
//
// A Finish carries the physically based surface parameters a 3D viewer
// needs (metalness, roughness, clearcoat and so on) plus a base color that
// the 2D sinks use as the panel fill. Keys match the price table in
// [cost.Lookup].
//
// [cost.Lookup]: github.com/matzehuels/perfwall/pkg/cost.Lookup
package finish

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/matzehuels/perfwall/pkg/wall"
)

// Finish is the surface description of one material.
type Finish struct {
	Key                string  `json:"key"`
	Color              uint32  `json:"-"` // 0xRRGGBB
	Metalness          float64 `json:"metalness"`
	Roughness          float64 `json:"roughness"`
	EnvMapIntensity    float64 `json:"envMapIntensity"`
	Clearcoat          float64 `json:"clearcoat"`
	ClearcoatRoughness float64 `json:"clearcoatRoughness"`
	Reflectivity       float64 `json:"reflectivity"`
	IOR                float64 `json:"ior"`
}

var finishes = map[string]Finish{
	"brushed-metal":   {"brushed-metal", 0x888888, 1, 0.5, 1.0, 0.3, 0.4, 0.8, 3.0},
	"polished-silver": {"polished-silver", 0xf0f0f0, 1, 0.05, 2.5, 1.0, 0.01, 1.0, 2.5},
	"bronze":          {"bronze", 0xcd7f32, 1, 0.3, 1.5, 0.4, 0.3, 0.7, 2.8},
	"copper":          {"copper", 0xca7245, 1, 0.2, 1.8, 0.5, 0.2, 0.8, 2.7},
	"gold":            {"gold", 0xffd700, 1, 0.1, 2.0, 0.8, 0.1, 1.0, 2.8},
	"titanium":        {"titanium", 0x787878, 1, 0.4, 1.3, 0.6, 0.3, 0.75, 2.9},
	"dark-steel":      {"dark-steel", 0x1a1a1a, 1, 0.3, 1.2, 0.5, 0.2, 0.7, 3.0},
}

// Lookup returns the finish for key, falling back to brushed-metal for
// unknown keys. The second result reports whether key was found.
func Lookup(key string) (Finish, bool) {
	if f, ok := finishes[key]; ok {
		return f, true
	}
	return finishes[wall.DefaultMaterial], false
}

// For returns the finish of the panel material selected in p.
func For(p wall.Params) Finish {
	f, _ := Lookup(p.PanelMaterial)
	return f
}

// Hex returns the base color as "#rrggbb".
func (f Finish) Hex() string {
	return fmt.Sprintf("#%06x", f.Color&0xffffff)
}

// RGBA returns the base color as an opaque color.
func (f Finish) RGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(f.Color >> 16),
		G: uint8(f.Color >> 8),
		B: uint8(f.Color),
		A: 0xff,
	}
}

// Dark reports whether the base color is dark enough that overlays
// should be drawn in a light color.
func (f Finish) Dark() bool {
	c := f.RGBA()
	return (int(c.R)+int(c.G)+int(c.B))/3 < 0x60
}

// MarshalJSON includes the color as a hex string.
func (f Finish) MarshalJSON() ([]byte, error) {
	type plain Finish
	return json.Marshal(struct {
		plain
		Color string `json:"color"`
	}{plain(f), f.Hex()})
}
