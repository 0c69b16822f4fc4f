package mir

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Column identifies a single column flowing through the MIR graph.
// Table is empty for unqualified columns; an unqualified column is never
// the same column as a qualified one, even when the names match.
type Column struct {
	Name  string
	Table string
}

func (c Column) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

type Columns []Column

func (cols Columns) Contains(c Column) bool {
	return slices.Contains(cols, c)
}

func (cols Columns) String() string {
	var sb strings.Builder
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
