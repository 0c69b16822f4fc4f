package mir

type (
	// Operator is the closed set of MIR operator kinds. The rewrite passes
	// only care about structure: whether a kind retains state, passes rows
	// through from a single input, or aliases another node. Execution
	// semantics belong to the lowering stage.
	Operator interface {
		// ReferencedColumns returns the columns the operator reads beyond
		// what the node projects; consider a filter that filters on a
		// column it never emits.
		ReferencedColumns() Columns
	}

	noExtraColumns struct{}

	// Base is a root operator backed directly by a physical input table.
	Base struct {
		Table string
		Keys  Columns

		noExtraColumns
	}

	Aggregation struct {
		GroupBy Columns
		Over    Column
	}

	// TopK keeps the top K rows per group in the given order.
	TopK struct {
		Order Columns
		K     int
	}

	Join struct {
		OnLeft  Columns
		OnRight Columns
		Emit    Columns
	}

	Project struct {
		Emit Columns
	}

	ComparisonOp int8

	FilterCondition struct {
		Column Column
		Op     ComparisonOp
		Value  string
	}

	Filter struct {
		Conditions []FilterCondition
	}

	Union struct {
		noExtraColumns
	}

	// Identity passes rows through unchanged. A materialized identity is
	// what the materialization pass splices in to force state retention at
	// a point in the graph.
	Identity struct {
		Materialized bool

		noExtraColumns
	}

	// Reuse aliases the output of an existing node instead of introducing
	// new computation, so materialized state is never duplicated.
	Reuse struct {
		Node *Node

		noExtraColumns
	}

	// Leaf is the virtual sink of a query. It is discarded before lowering
	// and must never accumulate columns.
	Leaf struct {
		Keys Columns
	}
)

const (
	OpEqual ComparisonOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

var _ Operator = (*Base)(nil)
var _ Operator = (*Aggregation)(nil)
var _ Operator = (*TopK)(nil)
var _ Operator = (*Join)(nil)
var _ Operator = (*Project)(nil)
var _ Operator = (*Filter)(nil)
var _ Operator = (*Union)(nil)
var _ Operator = (*Identity)(nil)
var _ Operator = (*Reuse)(nil)
var _ Operator = (*Leaf)(nil)

func (noExtraColumns) ReferencedColumns() Columns {
	return nil
}

func (a *Aggregation) ReferencedColumns() Columns {
	cols := make(Columns, 0, len(a.GroupBy)+1)
	cols = append(cols, a.GroupBy...)
	if a.Over != (Column{}) {
		cols = append(cols, a.Over)
	}
	return cols
}

func (t *TopK) ReferencedColumns() Columns {
	return t.Order
}

func (j *Join) ReferencedColumns() Columns {
	cols := make(Columns, 0, len(j.OnLeft)+len(j.OnRight))
	cols = append(cols, j.OnLeft...)
	cols = append(cols, j.OnRight...)
	return cols
}

func (p *Project) ReferencedColumns() Columns {
	return p.Emit
}

func (f *Filter) ReferencedColumns() Columns {
	cols := make(Columns, 0, len(f.Conditions))
	for _, cond := range f.Conditions {
		cols = append(cols, cond.Column)
	}
	return cols
}

func (l *Leaf) ReferencedColumns() Columns {
	return l.Keys
}

func (op ComparisonOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}
