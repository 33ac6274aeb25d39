package commands

import (
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var describe int

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Count descriptor tables or describe one",
		Example: `  healake tables
  healake tables --describe 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			lake, cleanup, err := cc.OpenLake(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if describe == 0 {
				n, err := lake.Client.CountTables(ctx)
				if err != nil {
					return err
				}
				return cc.Renderer.Rows([]string{"descriptor_tables"}, [][]any{{n}})
			}

			comp, err := lake.Client.Lookup(ctx, describe)
			if err != nil {
				return err
			}
			meta, err := lake.Adapter.GetTableMetadata(ctx, lake.Client.Schema().DescriptorTable(comp.ID))
			if err != nil {
				return err
			}

			rows := make([][]any, len(meta.Columns))
			for i, c := range meta.Columns {
				rows[i] = []any{c.Position, c.Name, c.Type, c.Nullable}
			}
			cc.Renderer.Headerf("%s.%s", meta.Schema, meta.Name)
			return cc.Renderer.Rows([]string{"position", "column", "type", "nullable"}, rows)
		},
	}

	cmd.Flags().IntVar(&describe, "describe", 0, "Show the columns of the descriptor table with this id")
	return cmd
}
