package cost

import (
	"sort"

	"github.com/matzehuels/perfwall/pkg/wall"
)

// Material holds the fabrication prices of one sheet material, in euros.
type Material struct {
	Key                  string  `json:"key"`
	PricePerSquareMeter  float64 `json:"pricePerSquareMeter"`
	PricePerMeterOfHoles float64 `json:"pricePerMeterOfHoles"`
}

var materials = map[string]Material{
	"brushed-metal":   {"brushed-metal", 150, 20},
	"polished-silver": {"polished-silver", 200, 25},
	"bronze":          {"bronze", 180, 22},
	"copper":          {"copper", 190, 23},
	"gold":            {"gold", 250, 30},
	"titanium":        {"titanium", 220, 28},
	"dark-steel":      {"dark-steel", 160, 21},
}

// Lookup returns the material for key. Unknown or empty keys resolve to
// brushed-metal; the second result reports whether key was found.
func Lookup(key string) (Material, bool) {
	if m, ok := materials[key]; ok {
		return m, true
	}
	return materials[wall.DefaultMaterial], false
}

// Materials returns the full price table sorted by key.
func Materials() []Material {
	out := make([]Material, 0, len(materials))
	for _, m := range materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Keys returns the material keys sorted alphabetically.
func Keys() []string {
	ms := Materials()
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}
