package finish

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key   string
		want  string
		found bool
	}{
		{"gold", "#ffd700", true},
		{"dark-steel", "#1a1a1a", true},
		{"copper", "#ca7245", true},
		{"unobtainium", "#888888", false},
		{"", "#888888", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f, ok := Lookup(tt.key)
			if ok != tt.found {
				t.Errorf("found = %v, want %v", ok, tt.found)
			}
			if f.Hex() != tt.want {
				t.Errorf("Hex() = %s, want %s", f.Hex(), tt.want)
			}
		})
	}
}

func TestEveryPricedMaterialHasAFinish(t *testing.T) {
	for _, key := range cost.Keys() {
		if _, ok := Lookup(key); !ok {
			t.Errorf("no finish for material %q", key)
		}
	}
}

func TestRGBA(t *testing.T) {
	f, _ := Lookup("bronze")
	if got := f.RGBA(); got != (color.NRGBA{0xcd, 0x7f, 0x32, 0xff}) {
		t.Errorf("RGBA() = %v", got)
	}
}

func TestDark(t *testing.T) {
	if f, _ := Lookup("dark-steel"); !f.Dark() {
		t.Error("dark-steel should be dark")
	}
	if f, _ := Lookup("polished-silver"); f.Dark() {
		t.Error("polished-silver should not be dark")
	}
}

func TestFor(t *testing.T) {
	p := wall.Defaults()
	p.PanelMaterial = "titanium"
	if f := For(p); f.Key != "titanium" || f.Roughness != 0.4 {
		t.Errorf("For() = %+v", f)
	}
}

func TestMarshalJSON(t *testing.T) {
	f, _ := Lookup("gold")
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["color"] != "#ffd700" || out["key"] != "gold" || out["ior"] != 2.8 {
		t.Errorf("json = %s", data)
	}
}
