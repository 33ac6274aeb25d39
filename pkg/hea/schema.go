package hea

import (
	"fmt"
	"regexp"
	"strconv"
)

// Fixed column names of the lake tables.
const (
	ColumnConIndex    = "con_index"
	columnID          = "id"
	elementColumnStem = "elem"
	concentrationStem = "con"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Schema names the lake tables.
type Schema struct {
	CombinationTable     string
	DescriptorPrefix     string
	ConcentrationTable   string
	DescriptorNamesTable string
}

// DefaultSchema returns the table names of the six-element lake.
func DefaultSchema() Schema {
	return Schema{
		CombinationTable:     "hea_elements_6",
		DescriptorPrefix:     "hea_6_c_",
		ConcentrationTable:   "hea_con_6",
		DescriptorNamesTable: "descriptor_names",
	}
}

// Validate checks that every table name is a plain SQL identifier.
func (s Schema) Validate() error {
	names := map[string]string{
		"combination table":      s.CombinationTable,
		"descriptor prefix":      s.DescriptorPrefix,
		"concentration table":    s.ConcentrationTable,
		"descriptor names table": s.DescriptorNamesTable,
	}
	for what, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%s %q is not a valid identifier", what, name)
		}
	}
	return nil
}

// DescriptorTable returns the descriptor table name for id.
//
// This is the only place a value is interpolated into query text as an
// identifier. It takes a TableID rather than an int so the id has always
// been checked against the reference table first.
func (s Schema) DescriptorTable(id TableID) string {
	return s.DescriptorPrefix + strconv.Itoa(id.n)
}

func elementColumns() []string {
	cols := make([]string, CompositionSize)
	for i := range cols {
		cols[i] = elementColumnStem + strconv.Itoa(i+1)
	}
	return cols
}

// ConcentrationColumns returns con1..con6, positionally aligned with
// Composition.Elements.
func ConcentrationColumns() []string {
	cols := make([]string, CompositionSize)
	for i := range cols {
		cols[i] = concentrationStem + strconv.Itoa(i+1)
	}
	return cols
}
