package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/render/finish"
)

// materialRow is one line of `perfwall materials --json`.
type materialRow struct {
	cost.Material
	Finish finish.Finish `json:"finish"`
}

// materialsCommand creates the materials command.
func (c *CLI) materialsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List panel materials and their prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := cost.Materials()
			if asJSON {
				rows := make([]materialRow, len(ms))
				for i, m := range ms {
					f, _ := finish.Lookup(m.Key)
					rows[i] = materialRow{Material: m, Finish: f}
				}
				return writeJSON(cmd, rows)
			}

			t := newTable("Material", "Sheet €/m²", "Cutting €/m", "Color")
			for _, m := range ms {
				f, _ := finish.Lookup(m.Key)
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Hex())).Render("■ " + f.Hex())
				t.Row(m.Key, fmt.Sprintf("%.2f", m.PricePerSquareMeter), fmt.Sprintf("%.2f", m.PricePerMeterOfHoles), swatch)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON, including render finishes")
	return cmd
}
