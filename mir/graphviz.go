package mir

import (
	"fmt"
	"strings"
)

// GraphViz renders the query graph as graphviz dot text for debugging:
// one record per node with its operator and columns, solid edges for
// dataflow and dashed edges from Reuse targets to their aliases.
func GraphViz(q *Query) string {
	ids := make(map[*Node]int)
	var order []*Node

	var walk func(n *Node)
	walk = func(n *Node) {
		if _, ok := ids[n]; ok {
			return
		}
		ids[n] = len(order)
		order = append(order, n)
		for _, a := range n.Ancestors {
			walk(a)
		}
		for _, c := range n.Children {
			walk(c)
		}
		if r, ok := n.Op.(*Reuse); ok && r.Node != nil {
			walk(r.Node)
		}
	}
	for _, root := range q.Roots {
		walk(root)
	}
	walk(q.Leaf)

	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("    node [shape=record, fontsize=10]\n")

	for _, n := range order {
		label := fmt.Sprintf("%s | %s", n.VersionedName(), describeOp(n.Op))
		if role := describeRole(n.Role); role != "" {
			label += " | " + role
		}
		if len(n.Columns) > 0 {
			label += " | " + n.Columns.String()
		}
		fmt.Fprintf(&sb, "    n%d [label=\"%s\"]\n", ids[n], label)
	}

	for _, n := range order {
		for _, c := range n.Children {
			fmt.Fprintf(&sb, "    n%d -> n%d\n", ids[n], ids[c])
		}
		if r, ok := n.Op.(*Reuse); ok && r.Node != nil {
			fmt.Fprintf(&sb, "    n%d -> n%d [style=dashed]\n", ids[r.Node], ids[n])
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func describeOp(op Operator) string {
	switch op := op.(type) {
	case *Base:
		return fmt.Sprintf("Base(%s)", op.Table)
	case *Aggregation:
		return fmt.Sprintf("Aggregation(%s) over %s", op.GroupBy.String(), op.Over)
	case *TopK:
		return fmt.Sprintf("TopK(%d) by %s", op.K, op.Order.String())
	case *Join:
		return fmt.Sprintf("Join(%s = %s)", op.OnLeft.String(), op.OnRight.String())
	case *Project:
		return fmt.Sprintf("Project(%s)", op.Emit.String())
	case *Filter:
		var conds []string
		for _, cond := range op.Conditions {
			conds = append(conds, fmt.Sprintf("%s %s %s", cond.Column, cond.Op, cond.Value))
		}
		return fmt.Sprintf("Filter(%s)", strings.Join(conds, " AND "))
	case *Union:
		return "Union"
	case *Identity:
		if op.Materialized {
			return "Identity (materialized)"
		}
		return "Identity"
	case *Reuse:
		return fmt.Sprintf("Reuse(%s)", op.Node.VersionedName())
	case *Leaf:
		return "Leaf"
	default:
		return fmt.Sprintf("%T", op)
	}
}

func describeRole(role SecurityRole) string {
	switch role {
	case RoleBoundary:
		return "security boundary"
	case RoleUnion:
		return "security union"
	default:
		return ""
	}
}
