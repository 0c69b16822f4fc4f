package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNodeIdx(t *testing.T) {
	assert.True(t, Root.IsRoot())
	assert.False(t, NodeIdx(3).IsRoot())
	assert.False(t, InvalidNode.IsRoot())

	assert.Equal(t, zap.Uint32("node_idx", 3), NodeIdx(3).Zap())
	assert.Equal(t, zap.Uint32("leaf", 3), NodeIdx(3).ZapField("leaf"))
}
