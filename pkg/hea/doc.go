// Package hea resolves six-element alloy compositions to their descriptor
// tables and queries those tables.
//
// The lake holds one descriptor table per composition (hea_6_c_<id>), a
// reference table mapping each unordered set of six elements to its id
// (hea_elements_6), and a concentration table shared by all compositions
// (hea_con_6). Callers name a composition by its element symbols in any
// order and any case:
//
//	client, err := hea.NewClient(adp, hea.Config{})
//	res, err := client.QueryByElements(ctx, []string{"fe", "NI", "Mn", "al", "CR", "cu"}, hea.Request{
//		Filters:           []hea.Filter{{Column: "ave_fe1", Op: hea.OpGt, Value: 1.7}},
//		WithConcentration: true,
//		Limit:             5,
//	})
//
// Filter values always travel as bound parameters. The only identifier
// spliced into query text is the descriptor table name, and it can only be
// derived from a TableID, which this package hands out after validating the
// id against the reference table.
package hea
