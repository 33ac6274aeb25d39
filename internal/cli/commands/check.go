package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/healake/pkg/hea"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every composition maps to exactly one table",
		Long: `Scan the reference table and report element sets registered under more
than one table id. Exits non-zero when duplicates are found.`,
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

			err = lake.Client.CheckUnique(cmd.Context())

			var dupErr *hea.DuplicateCompositionError
			if errors.As(err, &dupErr) {
				cc.Renderer.Warnf("%d element sets map to more than one table", len(dupErr.Duplicates))
				rows := make([][]any, len(dupErr.Duplicates))
				for i, d := range dupErr.Duplicates {
					rows[i] = []any{d.Key, fmt.Sprint(d.IDs)}
				}
				if rerr := cc.Renderer.Rows([]string{"composition", "table_ids"}, rows); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return err
			}

			cc.Renderer.Successf("ok: every composition maps to a single table")
			return nil
		},
	}
}
