package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/fabricate"
)

// fabricateCommand creates the fabricate command for cutting files.
func (c *CLI) fabricateCommand() *cobra.Command {
	var fo fabricate.Options

	cmd := &cobra.Command{
		Use:   "fabricate [image]",
		Short: "Write per-panel cutting files (DXF, optional STL)",
		Long: `Write per-panel cutting files.

Each panel becomes one flat blank in millimetres: the panel face with its
four folding flaps, corners relieved, every hole cut out. The outline is
written as DXF for laser or waterjet cutting. With --stl the blank is also
extruded to sheet thickness and written as an STL mesh.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().StringVarP(&fo.Dir, "dir", "d", "fabrication", "output directory")
	cmd.Flags().Float64Var(&fo.Resolution, "resolution", fabricate.DefaultResolution, "outline resolution in mm")
	cmd.Flags().BoolVar(&fo.STL, "stl", false, "also write an extruded STL per panel")
	cmd.Flags().IntVar(&fo.MeshCells, "mesh-cells", fabricate.DefaultMeshCells, "STL mesh cells along the longest axis")
	cmd.Flags().Float64Var(&fo.Thickness, "thickness", 0, "sheet thickness in mm for the STL (default 0.5)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		file, err := wf.load(cmd)
		if err != nil {
			return err
		}
		runner, err := c.newRunner(wf.noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		res, err := computeWithSpinner(cmd.Context(), "Computing layout...", func(ctx context.Context) (*computed, error) {
			opts := wf.options(file, imageArg(args))
			opts.Stdin = cmd.InOrStdin()
			return compute(ctx, runner, opts)
		})
		if err != nil {
			return err
		}

		prog := newProgress(c.Logger)
		opts := fo
		opts.Logger = c.Logger
		files, err := fabricate.Export(cmd.Context(), res.Layout, opts)
		if err != nil {
			return fmt.Errorf("fabricate: %w", err)
		}
		prog.done(fmt.Sprintf("Exported %d panel(s)", len(res.Layout.Panels)))

		printSuccess("Wrote %d file(s) to %s", len(files), opts.Dir)
		for _, f := range files {
			printFile(fmt.Sprintf("%s  %s", f.Path, StyleDim.Render(fmt.Sprintf("(%d holes)", f.Holes))))
		}
		return nil
	}
	return cmd
}
