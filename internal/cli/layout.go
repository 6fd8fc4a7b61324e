package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/render/sink"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		scene  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [image]",
		Short: "Compute the wall layout and write it as JSON",
		Long: `Compute the wall layout and write it as JSON.

The output holds every panel with its cells, the hole count and the price
breakdown. Without an image the panels are laid out without holes. Layouts
are cached locally by parameters and image content.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <image>.layout.json or wall.layout.json)")
	cmd.Flags().BoolVar(&scene, "scene", false, "include the preview scene (dimensions, figure, ground)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runLayout(cmd, wf, imageArg(args), output, scene)
	}
	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, wf *wallFlags, image, output string, scene bool) error {
	ctx := cmd.Context()
	file, err := wf.load(cmd)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(wf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := computeWithSpinner(ctx, "Computing layout...", func(ctx context.Context) (*computed, error) {
		opts := wf.options(file, image)
		opts.Stdin = cmd.InOrStdin()
		return compute(ctx, runner, opts)
	})
	if err != nil {
		return err
	}

	jsonOpts := []sink.JSONOption{sink.WithJSONBreakdown(res.Breakdown), sink.WithJSONIndent()}
	if scene {
		jsonOpts = append(jsonOpts, sink.WithJSONScene())
	}
	data, err := sink.RenderJSON(res.Layout, jsonOpts...)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = basePath("", image) + ".layout.json"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(res.Layout.Panels), res.Layout.TotalHoleCount, res.Cached)
	printNewline()
	printNextStep("Price it", strings.TrimSpace("perfwall cost "+image))
	return nil
}

// computeWithSpinner runs fn behind a spinner.
func computeWithSpinner(ctx context.Context, msg string, fn func(context.Context) (*computed, error)) (*computed, error) {
	s := newSpinner(ctx, msg).Start()
	res, err := fn(ctx)
	if err != nil {
		s.StopWithError("Failed")
		return nil, err
	}
	s.Stop()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, nil
}
