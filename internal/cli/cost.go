package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// costCommand creates the cost command.
func (c *CLI) costCommand() *cobra.Command {
	var (
		holes  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "cost [image]",
		Short: "Estimate the price of a wall",
		Long: `Estimate the price of a wall.

Sheet material is charged per square meter of panel surface and cutting per
meter of hole outline, at the rates of the selected material. The hole
count comes from the layout; pass --holes to price a known count without
computing one.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().IntVar(&holes, "holes", -1, "price this many holes instead of computing the layout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		file, err := wf.load(cmd)
		if err != nil {
			return err
		}
		p := file.Wall

		var b cost.Breakdown
		if cmd.Flags().Changed("holes") {
			if holes < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--holes must be >= 0, got %d", holes)
			}
			if len(args) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--holes and an image are mutually exclusive")
			}
			b = cost.Estimate(p, wall.NewPartition(p), holes)
		} else {
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
			b = res.Breakdown
		}

		if asJSON {
			return writeJSON(cmd, b)
		}

		if _, known := cost.Lookup(p.PanelMaterial); !known {
			printWarning("Unknown material %q, priced as %s", p.PanelMaterial, b.Material)
		}
		fmt.Fprintln(cmd.OutOrStdout(), breakdownTable(b))
		printNewline()
		printSummary(cost.Summary(p, b))
		return nil
	}
	return cmd
}
