package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/pipeline"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/source"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// Wall parameter flag names.
const (
	flagWallWidth   = "wall-width"
	flagWallHeight  = "wall-height"
	flagPanelWidth  = "panel-width"
	flagPanelGap    = "panel-gap"
	flagRows        = "rows"
	flagCellSize    = "cell-size"
	flagRounding    = "rounding"
	flagMaxScale    = "max-scale"
	flagShape       = "shape"
	flagSides       = "sides"
	flagRotation    = "rotation"
	flagInvert      = "invert"
	flagMaterial    = "material"
	flagEdgeOffset  = "edge-offset"
	flagConfig      = "config"
	flagNoCache     = "no-cache"
	flagRefresh     = "refresh"
	flagMaxImageDim = "max-image-size"
)

// wallFlags binds --config and one flag per wall parameter. Only flags set
// on the command line override the config file.
type wallFlags struct {
	config       string
	p            wall.Params
	shape        string
	noCache      bool
	refresh      bool
	maxImageSize int
}

func addWallFlags(cmd *cobra.Command) *wallFlags {
	d := wall.Defaults()
	f := &wallFlags{p: d, shape: d.Shape.Kind.String()}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, flagConfig, "c", "", "wall config file (.toml, .yaml)")
	fs.Float64Var(&f.p.WallWidth, flagWallWidth, d.WallWidth, "wall width in meters")
	fs.Float64Var(&f.p.WallHeight, flagWallHeight, d.WallHeight, "wall height in meters")
	fs.Float64Var(&f.p.PanelWidth, flagPanelWidth, d.PanelWidth, "nominal panel width in meters")
	fs.Float64Var(&f.p.PanelGap, flagPanelGap, d.PanelGap, "gap between panels in meters")
	fs.IntVar(&f.p.VerticalPanelDivision, flagRows, d.VerticalPanelDivision, "number of panel rows")
	fs.Float64Var(&f.p.CellSize, flagCellSize, d.CellSize, "cell pitch in meters")
	fs.Float64Var(&f.p.CellSizeRounding, flagRounding, d.CellSizeRounding, "hole size rounding step in meters")
	fs.Float64Var(&f.p.MaxCellScale, flagMaxScale, d.MaxCellScale, "largest hole as a fraction of the cell pitch")
	fs.StringVar(&f.shape, flagShape, f.shape, "hole shape: square, circle, polygon")
	fs.IntVar(&f.p.Shape.Sides, flagSides, d.Shape.Sides, "polygon side count")
	fs.Float64Var(&f.p.CellRotation, flagRotation, d.CellRotation, "hole rotation in degrees")
	fs.BoolVar(&f.p.Invert, flagInvert, d.Invert, "large holes in dark image areas")
	fs.StringVarP(&f.p.PanelMaterial, flagMaterial, "m", d.PanelMaterial, "panel material (see 'perfwall materials')")
	fs.Float64Var(&f.p.OffsetFromEdges, flagEdgeOffset, d.OffsetFromEdges, "hole-free border in multiples of the cell pitch")

	fs.BoolVar(&f.noCache, flagNoCache, false, "disable caching")
	fs.BoolVar(&f.refresh, flagRefresh, false, "recompute the layout even when cached")
	fs.IntVar(&f.maxImageSize, flagMaxImageDim, 0, "downscale images whose longest side exceeds this before sampling (pixels, 0 = off)")

	_ = cmd.RegisterFlagCompletionFunc(flagMaterial, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cost.Keys(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc(flagShape, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"square", "circle", "polygon"}, cobra.ShellCompDirectiveNoFileComp
	})
	return f
}

// load returns the effective configuration: defaults, then the config
// file, then every flag the user set. The wall parameters are validated.
func (f *wallFlags) load(cmd *cobra.Command) (config.File, error) {
	file := config.Defaults()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return config.File{}, err
		}
		file = loaded
	}

	fs := cmd.Flags()
	p := &file.Wall
	overrides := []struct {
		name  string
		apply func()
	}{
		{flagWallWidth, func() { p.WallWidth = f.p.WallWidth }},
		{flagWallHeight, func() { p.WallHeight = f.p.WallHeight }},
		{flagPanelWidth, func() { p.PanelWidth = f.p.PanelWidth }},
		{flagPanelGap, func() { p.PanelGap = f.p.PanelGap }},
		{flagRows, func() { p.VerticalPanelDivision = f.p.VerticalPanelDivision }},
		{flagCellSize, func() { p.CellSize = f.p.CellSize }},
		{flagRounding, func() { p.CellSizeRounding = f.p.CellSizeRounding }},
		{flagMaxScale, func() { p.MaxCellScale = f.p.MaxCellScale }},
		{flagSides, func() { p.Shape.Sides = f.p.Shape.Sides }},
		{flagRotation, func() { p.CellRotation = f.p.CellRotation }},
		{flagInvert, func() { p.Invert = f.p.Invert }},
		{flagMaterial, func() { p.PanelMaterial = f.p.PanelMaterial }},
		{flagEdgeOffset, func() { p.OffsetFromEdges = f.p.OffsetFromEdges }},
	}
	for _, o := range overrides {
		if fs.Changed(o.name) {
			o.apply()
		}
	}
	if fs.Changed(flagShape) {
		kind, err := wall.ParseShapeKind(f.shape)
		if err != nil {
			return config.File{}, err
		}
		p.Shape.Kind = kind
	}
	if f.maxImageSize > 0 {
		file.Render.MaxImageSize = f.maxImageSize
	}

	if err := p.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

// options returns pipeline options for file and an optional image source.
func (f *wallFlags) options(file config.File, image string) pipeline.Options {
	opts := pipeline.FromConfig(file)
	opts.Image = image
	opts.Refresh = f.refresh
	return opts
}

// computed is one evaluated wall.
type computed struct {
	Image     *source.Loaded
	Layout    wall.Layout
	Breakdown cost.Breakdown
	Cached    bool
}

// compute loads the image (if any) and builds the layout through the
// runner's cache.
func compute(ctx context.Context, r *pipeline.Runner, opts pipeline.Options) (*computed, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	loaded, err := r.LoadImage(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	out := &computed{Image: loaded}

	l, hit, err := r.LayoutWithCacheInfo(ctx, opts.Params, loadedImage(loaded), opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	out.Layout = l
	out.Cached = hit
	out.Breakdown = cost.EstimateLayout(l)
	return out, nil
}

// imageArg returns the optional image argument.
func imageArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func loadedImage(l *source.Loaded) *raster.Image {
	if l == nil {
		return nil
	}
	return l.Image
}
