package mir

func col(name string) Column {
	return Column{Name: name}
}

func qcol(table, name string) Column {
	return Column{Name: name, Table: table}
}

func cols(names ...string) Columns {
	var out Columns
	for _, n := range names {
		out = append(out, Column{Name: n})
	}
	return out
}

func baseNode(name string, columns Columns) *Node {
	return NewNode(name, 0, columns, &Base{Table: name, Keys: columns[:1]})
}

// reachable returns every node connected to the query, in traversal order.
func reachable(q *Query) []*Node {
	var order []*Node
	seen := make(map[*Node]bool)

	queue := []*Node{q.Leaf}
	queue = append(queue, q.Roots...)
	for len(queue) > 0 {
		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		order = append(order, n)
		queue = append(queue, n.Ancestors...)
		queue = append(queue, n.Children...)
		if r, ok := n.Op.(*Reuse); ok && r.Node != nil {
			queue = append(queue, r.Node)
		}
	}
	return order
}
