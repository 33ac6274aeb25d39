package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/healake/pkg/hea"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	ID            int
	Columns       []string
	Filters       []string
	Concentration bool
	Limit         int
	ShowSQL       bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [element...]",
		Short: "Query the descriptor table of a composition",
		Long: `Query the descriptor table of a composition, named either by its six
element symbols or directly by table id.

Filters take the form <column><op><value> with op one of = != < <= > >=.
Filter values are always sent as bound parameters.`,
		Example: `  # Default columns, first 10 rows
  healake query Fe Ni Cr Co Mn Al

  # Filtered, with concentration ratios
  healake query al,co,cr,cu,fe,hf -f 'ave_fe1>1.7' -f 'hmix_data<=-3' --concentration

  # By table id, as CSV
  healake query --id 1 -c con_index,ave_fp1 -n 100 -o csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.ID, "id", 0, "Descriptor table id (instead of element symbols)")
	cmd.Flags().StringSliceVarP(&opts.Columns, "columns", "c", nil, "Columns to select (default: con_index and lake.default_columns)")
	cmd.Flags().StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter expression, repeatable (e.g. 'ave_fe1>1.7')")
	cmd.Flags().BoolVar(&opts.Concentration, "concentration", false, "Join concentration ratios con1..con6")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum rows (default: lake.default_limit)")
	cmd.Flags().BoolVar(&opts.ShowSQL, "show-sql", false, "Print the generated SQL and arguments to stderr")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	symbols := parseSymbols(args)
	switch {
	case opts.ID != 0 && len(symbols) > 0:
		return fmt.Errorf("use either element symbols or --id, not both")
	case opts.ID == 0 && len(symbols) == 0:
		return fmt.Errorf("name a composition by its element symbols or --id")
	}

	req := hea.Request{
		Columns:           opts.Columns,
		WithConcentration: opts.Concentration,
		Limit:             opts.Limit,
	}
	for _, expr := range opts.Filters {
		f, err := hea.ParseFilter(expr)
		if err != nil {
			return err
		}
		req.Filters = append(req.Filters, f)
	}

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
	var comp hea.Composition
	if opts.ID != 0 {
		comp, err = lake.Client.Lookup(ctx, opts.ID)
	} else {
		comp, err = lake.Client.Resolve(ctx, symbols)
	}
	if err != nil {
		return err
	}

	if opts.ShowSQL {
		q, err := lake.Client.BuildQuery(comp.ID, req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n-- args: %v\n", q.Text, q.Args)
	}

	res, err := lake.Client.BuildAndRun(ctx, comp, req)
	if err != nil {
		return err
	}

	cc.Renderer.Infof("%s (%s)", lake.Client.Schema().DescriptorTable(comp.ID), strings.Join(comp.Elements, " "))
	return cc.Renderer.Rows(res.Columns, res.Rows)
}
