package commands

import (
	"github.com/spf13/cobra"
)

// NewDescriptorsCommand creates the descriptors command.
func NewDescriptorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptors",
		Short: "List the documented descriptor columns",
		Args:  cobra.NoArgs,
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

			descs, err := lake.Client.Descriptors(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]any, len(descs))
			for i, d := range descs {
				rows[i] = []any{d.Name, d.Description}
			}
			return cc.Renderer.Rows([]string{"name", "description"}, rows)
		},
	}
}
