package mir

import "github.com/sumitdvlp/noria/graph"

// Query owns one compiled query's MIR graph for the duration of the
// rewrite passes. Roots are the base-table sources; Leaf is the virtual
// sink that lowering discards.
type Query struct {
	Name  string
	Roots []*Node
	Leaf  *Node
}

// MappingKey addresses one column of a universe's schema-mapped base.
// Table is empty when the column is unqualified.
type MappingKey struct {
	Column string
	Table  string
}

// Mapping translates columns, as qualified inside a security universe,
// back to the canonical table names. It is computed by the catalog and
// supplied only when compiling inside a universe.
type Mapping map[MappingKey]string

// Has reports whether col is one of the universe-mapped columns. Lookups
// on a nil Mapping simply miss.
func (m Mapping) Has(col Column) bool {
	_, ok := m[MappingKey{Column: col.Name, Table: col.Table}]
	return ok
}

func (q *Query) hasSecurityUnions() bool {
	queue := []*Node{q.Leaf}
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if node.Role == RoleUnion {
			return true
		}
		queue = append(queue, node.Ancestors...)
	}
	return false
}

// FlowNode is the lowering-side counterpart of a MIR node. The rewrite
// passes never assign one; lowering stamps the address once the physical
// node exists.
type FlowNode struct {
	Age     NodeAge
	Address graph.NodeIdx
}

func (fn *FlowNode) Valid() bool {
	return fn.Address != graph.InvalidNode
}

type NodeAge uint8

const (
	FlowNodeNew NodeAge = iota
	FlowNodeExisting
)
