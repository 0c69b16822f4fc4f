package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumitdvlp/noria/graph"
)

func TestLinkUnlink(t *testing.T) {
	parent := baseNode("t", cols("a"))
	child := NewNode("p", 0, cols("a"), &Project{Emit: cols("a")})

	Link(parent, child)
	assert.Equal(t, []*Node{child}, parent.Children)
	assert.Equal(t, []*Node{parent}, child.Ancestors)

	// linking again is a no-op
	Link(parent, child)
	assert.Len(t, parent.Children, 1)
	assert.Len(t, child.Ancestors, 1)

	Unlink(parent, child)
	assert.Empty(t, parent.Children)
	assert.Empty(t, child.Ancestors)

	// unlinking a missing edge is a no-op
	Unlink(parent, child)
	assert.Empty(t, parent.Children)
}

func TestAddColumn(t *testing.T) {
	node := baseNode("t", cols("a"))

	node.AddColumn(col("b"))
	node.AddColumn(col("b"))
	assert.Equal(t, cols("a", "b"), node.Columns)

	// same name, different qualifier: a different column
	node.AddColumn(qcol("t", "b"))
	assert.Equal(t, Columns{col("a"), col("b"), qcol("t", "b")}, node.Columns)
}

func TestReferencedColumns(t *testing.T) {
	filter := NewNode("f", 0, cols("a"), &Filter{
		Conditions: []FilterCondition{
			{Column: col("b"), Op: OpEqual, Value: "1"},
			{Column: col("a"), Op: OpGreater, Value: "0"},
		},
	})

	assert.Equal(t, cols("a", "b"), filter.ReferencedColumns(),
		"projected columns come first, operator extras are deduplicated in")
}

func TestVersionedName(t *testing.T) {
	node := NewNode("p", 3, cols("a"), &Project{Emit: cols("a")})
	assert.Equal(t, "p_v3", node.VersionedName())
}

func TestFlowNodeAddr(t *testing.T) {
	node := NewNode("p", 0, cols("a"), &Project{Emit: cols("a")})

	_, err := node.FlowNodeAddr()
	var bug *BugError
	require.ErrorAs(t, err, &bug, "fresh MIR nodes have no flow counterpart yet")

	node.Flow = FlowNode{Age: FlowNodeNew, Address: graph.NodeIdx(7)}
	addr, err := node.FlowNodeAddr()
	require.NoError(t, err)
	assert.Equal(t, graph.NodeIdx(7), addr)
}
