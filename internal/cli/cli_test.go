package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/order"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/session"
	"github.com/matzehuels/perfwall/pkg/wall"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"blank defaults to svg", "  ", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"trims and lowercases", " PNG , Json", []string{"png", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		image  string
		want   string
	}{
		{"no image", "", "", "wall"},
		{"stdin", "", "-", "wall"},
		{"url", "", "https://example.com/cat.png", "wall"},
		{"image file", "", "photos/cat.jpg", "photos/cat"},
		{"output wins", "out/front", "cat.png", "out/front"},
		{"known extension stripped", "front.svg", "", "front"},
		{"unknown extension kept", "front.v2", "", "front.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.image); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.image, got, tt.want)
			}
		})
	}
}

func TestWallFlagsLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wall.toml")
	data := []byte(`
[wall]
wallWidth = 6.2
panelMaterial = "copper"

[wall.cellShape]
kind = "circle"
`)
	if err := os.WriteFile(cfg, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, p wall.Params)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, p wall.Params) {
				if p != wall.Defaults() {
					t.Errorf("params = %+v, want defaults", p)
				}
			},
		},
		{
			name: "config file",
			args: []string{"--config", cfg},
			check: func(t *testing.T, p wall.Params) {
				if p.WallWidth != 6.2 || p.PanelMaterial != "copper" || p.Shape.Kind != wall.Circle {
					t.Errorf("params = %+v", p)
				}
				if p.WallHeight != wall.Defaults().WallHeight {
					t.Errorf("wall height = %v, want default", p.WallHeight)
				}
			},
		},
		{
			name: "flags override config",
			args: []string{"--config", cfg, "--wall-width", "3", "--shape", "polygon", "--sides", "8"},
			check: func(t *testing.T, p wall.Params) {
				if p.WallWidth != 3 {
					t.Errorf("wall width = %v, want 3", p.WallWidth)
				}
				if p.Shape != wall.PolygonShape(8) {
					t.Errorf("shape = %+v, want octagon", p.Shape)
				}
				if p.PanelMaterial != "copper" {
					t.Errorf("material = %q, want copper from config", p.PanelMaterial)
				}
			},
		},
		{name: "bad shape", args: []string{"--shape", "star"}, wantErr: true},
		{name: "invalid params", args: []string{"--wall-width", "-1"}, wantErr: true},
		{name: "missing config", args: []string{"--config", filepath.Join(dir, "nope.toml")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			wf := addWallFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			file, err := wf.load(cmd)
			if tt.wantErr {
				if err == nil {
					t.Fatal("load() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load() error: %v", err)
			}
			tt.check(t, file.Wall)
		})
	}
}

func TestRotateImage(t *testing.T) {
	img := raster.Gradient(4, 2)

	r := rotateImage(img, 1)
	if r.Width != 2 || r.Height != 4 {
		t.Errorf("one turn = %dx%d, want 2x4", r.Width, r.Height)
	}
	if r := rotateImage(img, 4); r.Hash() != img.Hash() {
		t.Error("four turns should be the identity")
	}
	if r := rotateImage(img, 5); r.Hash() != rotateImage(img, 1).Hash() {
		t.Error("five turns should equal one")
	}

	r0 := rotateImage(img, 0)
	if r0 == img {
		t.Error("zero turns should return a copy")
	}
	if r0.Hash() != img.Hash() {
		t.Error("zero turns should not change the image")
	}
}

func TestWatchTargets(t *testing.T) {
	if got := watchTargets("", ""); len(got) != 0 {
		t.Errorf("watchTargets() = %v, want none", got)
	}
	if got := watchTargets("", "-"); len(got) != 0 {
		t.Errorf("stdin should not be watched: %v", got)
	}
	if got := watchTargets("", "https://example.com/a.png"); len(got) != 0 {
		t.Errorf("URLs should not be watched: %v", got)
	}

	got := watchTargets("wall.toml", "cat.png")
	if len(got) != 2 {
		t.Fatalf("watchTargets() = %v, want 2 paths", got)
	}
	for _, p := range got {
		if !filepath.IsAbs(p) {
			t.Errorf("%q is not absolute", p)
		}
	}
	if filepath.Base(got[0]) != "wall.toml" || filepath.Base(got[1]) != "cat.png" {
		t.Errorf("watchTargets() = %v", got)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

// =============================================================================
// Configurator model
// =============================================================================

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ConfiguratorModel, msg tea.Msg) (ConfiguratorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(ConfiguratorModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return cm, cmd
}

func TestConfiguratorAdjust(t *testing.T) {
	m := NewConfiguratorModel(session.New(wall.Defaults()), nil)
	if m.Init() == nil {
		t.Fatal("Init should schedule a compute")
	}

	m, _ = update(t, m, key("down"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, cmd := update(t, m, key("right"))
	if cmd == nil {
		t.Fatal("adjust should schedule a recompute")
	}
	if got := m.Session.Params().WallHeight; got != 4.1 {
		t.Errorf("wall height = %v, want 4.1", got)
	}

	m, _ = update(t, m, key("left"))
	m, _ = update(t, m, key("left"))
	if got := m.Session.Params().WallHeight; got != 3.9 {
		t.Errorf("wall height = %v, want 3.9", got)
	}

	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestConfiguratorDropsStaleResults(t *testing.T) {
	m := NewConfiguratorModel(session.New(wall.Defaults()), nil)
	m, _ = update(t, m, key("right"))

	stale := &session.Result{Breakdown: cost.Breakdown{Total: 1}}
	m, _ = update(t, m, computedMsg{seq: 0, res: stale})
	if m.result != nil {
		t.Error("stale result should be dropped")
	}

	fresh, err := m.Session.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	m, _ = update(t, m, computedMsg{seq: m.seq, res: fresh})
	if m.result != fresh {
		t.Error("current result should be kept")
	}
	if m.View() == "" {
		t.Error("View() is empty")
	}
}

func TestConfiguratorQuit(t *testing.T) {
	m := NewConfiguratorModel(session.New(wall.Defaults()), nil)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

// =============================================================================
// Commands
// =============================================================================

// run executes the root command with isolated cache and data directories
// and returns what the command wrote to its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.layout.json")
	if _, err := run(t, "layout", "--no-cache", "-o", path); err != nil {
		t.Fatalf("layout: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TotalHoleCount int               `json:"totalHoleCount"`
		Panels         []json.RawMessage `json:"panels"`
		Breakdown      cost.Breakdown    `json:"breakdown"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(doc.Panels) == 0 {
		t.Error("layout has no panels")
	}
	if doc.TotalHoleCount != 0 {
		t.Errorf("totalHoleCount = %d, want 0 without an image", doc.TotalHoleCount)
	}
	if doc.Breakdown.Total <= 0 {
		t.Errorf("breakdown total = %v, want > 0", doc.Breakdown.Total)
	}
}

func TestCostCommand(t *testing.T) {
	out, err := run(t, "cost", "--holes", "100", "--material", "gold", "--json")
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	var b cost.Breakdown
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode breakdown: %v\n%s", err, out)
	}
	if b.HoleCount != 100 || b.Material != "gold" {
		t.Errorf("breakdown = %+v", b)
	}
	if b.Total != b.PanelCost+b.HoleCost {
		t.Errorf("total %v != panel %v + holes %v", b.Total, b.PanelCost, b.HoleCost)
	}

	if _, err := run(t, "cost", "--holes", "-3"); err == nil {
		t.Error("negative --holes should fail")
	}
	if _, err := run(t, "cost", "--holes", "1", "cat.png"); err == nil {
		t.Error("--holes with an image should fail")
	}
}

func TestMaterialsCommand(t *testing.T) {
	out, err := run(t, "materials", "--json")
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	var rows []struct {
		Key    string         `json:"key"`
		Finish map[string]any `json:"finish"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != len(cost.Materials()) {
		t.Fatalf("got %d materials, want %d", len(rows), len(cost.Materials()))
	}
	if rows[0].Key != "bronze" {
		t.Errorf("first material = %q, want bronze", rows[0].Key)
	}
	if rows[0].Finish == nil {
		t.Error("finish missing")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName) + "\n"
	if out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestOrderCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "orders", "orders.db")

	out, err := run(t, "order", "--no-cache", "--db", db, "--json",
		"--name", "Ada Lovelace", "--email", "ada@example.com", "--phone", "+44 20 7946 0000")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	var submitted order.Order
	if err := json.Unmarshal([]byte(out), &submitted); err != nil {
		t.Fatalf("decode order: %v\n%s", err, out)
	}
	if submitted.ID == "" || submitted.Customer.Name != "Ada Lovelace" {
		t.Errorf("order = %+v", submitted)
	}
	if len(submitted.Summary) == 0 {
		t.Error("order has no summary")
	}

	out, err = run(t, "order", "list", "--db", db, "--json")
	if err != nil {
		t.Fatalf("order list: %v", err)
	}
	var listed []order.Order
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	if len(listed) != 1 || listed[0].ID != submitted.ID {
		t.Errorf("list = %+v, want [%s]", listed, submitted.ID)
	}

	if _, err := run(t, "order", "--db", db, "--name", "Ada"); err == nil {
		t.Error("order without email and phone should fail")
	}
}
