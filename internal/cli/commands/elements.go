package commands

import (
	"github.com/leapstack-labs/healake/pkg/hea"
	"github.com/spf13/cobra"
)

// NewElementsCommand creates the elements command.
func NewElementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the valid element symbols",
		Long:  `List the element symbols accepted in compositions (lake.elements).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			var rows [][]any
			for _, sym := range hea.NewElementSet(cc.Cfg.Lake.Elements...).Symbols() {
				rows = append(rows, []any{sym})
			}
			return cc.Renderer.Rows([]string{"element"}, rows)
		},
	}
}
