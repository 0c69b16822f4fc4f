package mir

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Validate checks the structural invariants every pass relies on: edges
// symmetric in both directions, no nil edges, and node names unique within
// the query. Defects are aggregated so a single report covers the whole
// graph. Planners should run this before handing a graph to the rewriter,
// and lowering may run it again afterwards.
func Validate(q *Query) error {
	var err error
	names := make(map[string]*Node)
	seen := make(map[*Node]bool)

	queue := []*Node{q.Leaf}
	queue = append(queue, q.Roots...)
	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if node == nil || seen[node] {
			continue
		}
		seen[node] = true

		if prev, ok := names[node.Name]; ok && prev != node {
			err = multierr.Append(err, fmt.Errorf("duplicate node name %q", node.Name))
		} else {
			names[node.Name] = node
		}

		for _, a := range node.Ancestors {
			if a == nil {
				err = multierr.Append(err, fmt.Errorf("node %q has a nil ancestor", node.Name))
				continue
			}
			if !slices.Contains(a.Children, node) {
				err = multierr.Append(err, fmt.Errorf(
					"edge %q -> %q missing from the parent's child list", a.Name, node.Name))
			}
			queue = append(queue, a)
		}

		for _, c := range node.Children {
			if c == nil {
				err = multierr.Append(err, fmt.Errorf("node %q has a nil child", node.Name))
				continue
			}
			if !slices.Contains(c.Ancestors, node) {
				err = multierr.Append(err, fmt.Errorf(
					"edge %q -> %q missing from the child's ancestor list", node.Name, c.Name))
			}
			queue = append(queue, c)
		}

		if r, ok := node.Op.(*Reuse); ok {
			if r.Node == nil {
				err = multierr.Append(err, fmt.Errorf("reuse node %q has a nil target", node.Name))
			} else {
				queue = append(queue, r.Node)
			}
		}
	}
	return err
}
