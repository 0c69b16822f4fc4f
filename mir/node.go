package mir

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sumitdvlp/noria/graph"
)

// SecurityRole marks a node's position relative to universe boundaries.
type SecurityRole int8

const (
	RoleNone SecurityRole = iota

	// RoleBoundary marks the first node inside a universe. Materialization
	// checks stop here: every chain ultimately traces back to a base
	// table, so without the cutoff everything would count as materialized.
	RoleBoundary

	// RoleUnion merges universe branches. Every immediate ancestor of a
	// union must be backed by materialized state before lowering.
	RoleUnion
)

// NodeOrigin records how a node entered the graph.
type NodeOrigin uint8

const (
	OriginQuery NodeOrigin = iota

	// OriginMaterialization marks nodes spliced in above a security union
	// to force state retention there.
	OriginMaterialization
)

// Node is a vertex in the MIR graph. Nodes are shared: the same *Node is
// reachable through multiple edges, and a mutation made during one pass is
// visible through every other reference to it.
type Node struct {
	Name    string
	Version int64

	// Columns being exposed to the operators downstream of this one.
	// Rewrite passes append to this list in place.
	Columns Columns
	Op      Operator

	Role   SecurityRole
	Origin NodeOrigin

	Ancestors []*Node
	Children  []*Node

	Flow FlowNode
}

func NewNode(name string, version int64, columns Columns, op Operator) *Node {
	return &Node{
		Name:    name,
		Version: version,
		Columns: columns,
		Op:      op,
		Flow:    FlowNode{Address: graph.InvalidNode},
	}
}

func (node *Node) VersionedName() string {
	return fmt.Sprintf("%s_v%d", node.Name, node.Version)
}

// AddColumn appends col to the node's output unless it is already there.
// Work-list traversals revisit shared nodes, so duplicate adds are common
// and must stay no-ops.
func (node *Node) AddColumn(col Column) {
	if !node.Columns.Contains(col) {
		node.Columns = append(node.Columns, col)
	}
}

// ReferencedColumns returns every column this node needs available: its
// own output plus whatever its operator reads without projecting.
func (node *Node) ReferencedColumns() Columns {
	cols := slices.Clone(node.Columns)
	for _, c := range node.Op.ReferencedColumns() {
		if !cols.Contains(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

func (node *Node) emittedByAncestor(col Column) bool {
	for _, a := range node.Ancestors {
		if a.Columns.Contains(col) {
			return true
		}
	}
	return false
}

func (node *Node) FlowNodeAddr() (graph.NodeIdx, error) {
	if !node.Flow.Valid() {
		return graph.NodeIdx(0), NewBug("MIR node does not have an associated FlowNode")
	}
	return node.Flow.Address, nil
}

// Link adds the parent -> child edge on both endpoints. Edges are only
// ever edited through Link and Unlink so the child list and the ancestor
// list stay symmetric.
func Link(parent, child *Node) {
	if !slices.Contains(parent.Children, child) {
		parent.Children = append(parent.Children, child)
	}
	if !slices.Contains(child.Ancestors, parent) {
		child.Ancestors = append(child.Ancestors, parent)
	}
}

// Unlink removes the parent -> child edge from both endpoints.
func Unlink(parent, child *Node) {
	if i := slices.Index(parent.Children, child); i >= 0 {
		parent.Children = slices.Delete(parent.Children, i, i+1)
	}
	if i := slices.Index(child.Ancestors, parent); i >= 0 {
		child.Ancestors = slices.Delete(child.Ancestors, i, i+1)
	}
}
