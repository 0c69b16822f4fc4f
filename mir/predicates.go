package mir

// HasColumn reports whether col is resolvable from node's own output or
// from anywhere in its ancestor closure. Pure membership: it does not say
// which ancestor provides the column.
func HasColumn(node *Node, col Column) bool {
	if node.Columns.Contains(col) {
		return true
	}
	for _, a := range node.Ancestors {
		if HasColumn(a, col) {
			return true
		}
	}
	return false
}

// checkMaterialized reports whether node is backed by materialized state.
// Recursion stops at universe boundaries (i.e. the next universe over);
// attributing materialization across a boundary would make every chain
// back to a base table look materialized.
func checkMaterialized(node *Node) (bool, error) {
	if node.Role == RoleBoundary {
		return false, nil
	}

	switch op := node.Op.(type) {
	// materialized kinds retain state themselves
	case *Aggregation, *Base, *TopK, *Join:
		return true, nil
	// query-through kinds: the state lives wherever the single input gets
	// its rows from
	case *Project, *Filter:
		if len(node.Ancestors) == 0 {
			return false, &MissingAncestorError{Node: node.Name}
		}
		return checkMaterialized(node.Ancestors[0])
	case *Reuse:
		return checkMaterialized(op.Node)
	case *Identity:
		// identities inserted by the materialization pass retain state;
		// treating them as unmaterialized would stack a fresh identity on
		// top of them at every revisit
		return op.Materialized, nil
	// everything else is unmaterialized and needs an identity on top
	default:
		return false, nil
	}
}

// checkReuseForIdentity finds an identity node previously inserted below
// node by the materialization pass, looking through Reuse aliasing. A hit
// means a valid insertion point already exists and must be shared rather
// than duplicated.
func checkReuseForIdentity(node *Node) *Node {
	for _, c := range node.Children {
		if c.Origin == OriginMaterialization {
			return c
		}
	}
	if reuse, ok := node.Op.(*Reuse); ok {
		return checkReuseForIdentity(reuse.Node)
	}
	return nil
}
