package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/pipeline"
	"github.com/matzehuels/perfwall/pkg/raster"
)

// rotateCommand creates the rotate command.
func (c *CLI) rotateCommand() *cobra.Command {
	var (
		output  string
		times   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "rotate <image>",
		Short: "Rotate an image by 90° steps and save it as PNG",
		Long: `Rotate an image by 90° steps and save it as PNG.

Each step moves the pixel at (x, y) to (y, width-1-x), so the result is
height × width. The pattern of a wall follows the image orientation, so
rotating is how a portrait photo is laid across a landscape wall.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--times must be >= 0, got %d", times)
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			loaded, err := runner.LoadImage(cmd.Context(), pipeline.Options{Image: args[0], Stdin: cmd.InOrStdin()})
			if err != nil {
				return err
			}

			img := rotateImage(loaded.Image, times)

			var buf bytes.Buffer
			if err := raster.EncodePNG(&buf, img); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if output == "" {
				output = basePath("", args[0]) + fmt.Sprintf("-rot%d.png", (times%4)*90)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rotated %d°", (times%4)*90)
			printFile(output)
			printDetail("%d×%d → %d×%d", loaded.Image.Width, loaded.Image.Height, img.Width, img.Height)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <image>-rot<deg>.png)")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "number of 90° counter-clockwise steps")
	cmd.Flags().BoolVar(&noCache, flagNoCache, false, "disable caching of downloaded images")
	return cmd
}

// rotateImage applies times quarter turns. Four turns are the identity, so
// only times mod 4 are performed; zero turns still returns a copy.
func rotateImage(img *raster.Image, times int) *raster.Image {
	out := img.Clone()
	for range times % 4 {
		out = out.Rotate90()
	}
	return out
}
