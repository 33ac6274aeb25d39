package commands

import (
	"strings"

	"github.com/leapstack-labs/healake/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <element>...",
		Short: "Find the descriptor table of a composition",
		Long: `Resolve six element symbols to the id of their descriptor table.

Order and case do not matter. Symbols may be separate arguments or joined
with commas or dashes.`,
		Example: `  healake resolve Fe Ni Cr Co Mn Al
  healake resolve al,co,cr,cu,fe,hf
  healake resolve Al-Co-Cr-Cu-Fe-Hf -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			lake, cleanup, err := cc.OpenLake(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			comp, err := lake.Client.Resolve(cmd.Context(), parseSymbols(args))
			if err != nil {
				return err
			}

			table := lake.Client.Schema().DescriptorTable(comp.ID)
			if cc.Renderer.Mode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{
					"table_id": comp.ID.Int(),
					"table":    table,
					"elements": comp.Elements,
					"key":      comp.Key(),
				})
			}
			return cc.Renderer.Rows(
				[]string{"table_id", "table", "elements"},
				[][]any{{comp.ID.Int(), table, strings.Join(comp.Elements, " ")}},
			)
		},
	}
}
