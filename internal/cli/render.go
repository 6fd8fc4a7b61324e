package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output         string
	formats        string
	pixelsPerMeter float64
	noDimensions   bool
	noFigure       bool
	noGround       bool
}

// renderCommand creates the render command for generating previews.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [image]",
		Short: "Render wall previews (SVG, PNG, PDF, JSON)",
		Long: `Render wall previews.

The elevation shows every panel in its material color with the holes cut
out, plus dimension lines, a 1.9 m reference figure and the ground line.
Multiple formats are rendered concurrently and written next to each other
as <base>.<format>. PDF output needs rsvg-convert on PATH.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: image name or 'wall')")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&ro.pixelsPerMeter, "ppm", 0, "pixels per meter for SVG/PNG/PDF (default from config, 200)")
	cmd.Flags().BoolVar(&ro.noDimensions, "no-dimensions", false, "omit dimension lines")
	cmd.Flags().BoolVar(&ro.noFigure, "no-figure", false, "omit the reference figure")
	cmd.Flags().BoolVar(&ro.noGround, "no-ground", false, "omit the ground line")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		file, err := wf.load(cmd)
		if err != nil {
			return err
		}
		ro.apply(cmd, &file)

		runner, err := c.newRunner(wf.noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		image := imageArg(args)
		opts := wf.options(file, image)
		opts.Stdin = cmd.InOrStdin()
		opts.Logger = c.Logger

		paths, res, err := renderToFiles(cmd, runner, opts, basePath(ro.output, image))
		if err != nil {
			return err
		}

		printSuccess("Rendered %d file(s)", len(paths))
		for _, p := range paths {
			printFile(p)
		}
		printStats(res.Stats.Panels, res.Stats.Holes, res.CacheInfo.LayoutHit)
		return nil
	}
	return cmd
}

// apply writes the flags the user set into the render section of file.
func (ro *renderOpts) apply(cmd *cobra.Command, file *config.File) {
	if cmd.Flags().Changed("format") {
		file.Render.Formats = parseFormats(ro.formats)
	}
	if ro.pixelsPerMeter > 0 {
		file.Render.PixelsPerMeter = ro.pixelsPerMeter
	}
	if ro.noDimensions {
		file.Render.Dimensions = false
	}
	if ro.noFigure {
		file.Render.Figure = false
	}
	if ro.noGround {
		file.Render.Ground = false
	}
}

// renderToFiles runs the full pipeline and writes one file per format as
// base.<format>. Paths are returned sorted.
func renderToFiles(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options, base string) ([]string, *pipeline.Result, error) {
	prog := newProgress(loggerFromContext(cmd.Context()))
	s := newSpinner(cmd.Context(), "Rendering...").Start()
	res, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		s.StopWithError("Render failed")
		return nil, nil, err
	}
	s.Stop()

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}

	paths := make([]string, 0, len(res.Artifacts))
	for format, data := range res.Artifacts {
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(paths)))
	return paths, res, nil
}
