package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("well-formed graph", func(t *testing.T) {
		base := baseNode("t", cols("a"))
		project := NewNode("p", 0, cols("a"), &Project{Emit: cols("a")})
		leaf := NewNode("q", 0, cols("a"), &Leaf{})
		Link(base, project)
		Link(project, leaf)

		require.NoError(t, Validate(&Query{Name: "q", Roots: []*Node{base}, Leaf: leaf}))
	})

	t.Run("asymmetric edge", func(t *testing.T) {
		base := baseNode("t", cols("a"))
		leaf := NewNode("q", 0, cols("a"), &Leaf{})
		// edge added on one side only, bypassing Link
		base.Children = append(base.Children, leaf)

		err := Validate(&Query{Name: "q", Roots: []*Node{base}, Leaf: leaf})
		require.Error(t, err)
		assert.ErrorContains(t, err, "missing from the child's ancestor list")
	})

	t.Run("defects are aggregated", func(t *testing.T) {
		base := baseNode("t", cols("a"))
		other := baseNode("t", cols("b"))
		leaf := NewNode("q", 0, cols("a"), &Leaf{})
		Link(base, leaf)
		other.Children = append(other.Children, leaf)

		err := Validate(&Query{Name: "q", Roots: []*Node{base, other}, Leaf: leaf})
		require.Error(t, err)
		assert.ErrorContains(t, err, `duplicate node name "t"`)
		assert.ErrorContains(t, err, "missing from the child's ancestor list")
	})

	t.Run("nil reuse target", func(t *testing.T) {
		reuse := NewNode("r", 0, cols("a"), &Reuse{})
		leaf := NewNode("q", 0, cols("a"), &Leaf{})
		Link(reuse, leaf)

		err := Validate(&Query{Name: "q", Roots: []*Node{reuse}, Leaf: leaf})
		assert.ErrorContains(t, err, "nil target")
	})
}
