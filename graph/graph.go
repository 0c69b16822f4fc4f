// Package graph defines the addressing scheme of the physical dataflow
// graph. The MIR layer only needs the addresses: lowering stamps a NodeIdx
// onto every MIR node once its flow counterpart exists.
package graph

import (
	"math"

	"go.uber.org/zap"
)

type NodeIdx uint32

const Root NodeIdx = 0
const InvalidNode NodeIdx = math.MaxUint32

func (n NodeIdx) IsRoot() bool {
	return n == Root
}

func (n NodeIdx) Zap() zap.Field {
	return zap.Uint32("node_idx", uint32(n))
}

func (n NodeIdx) ZapField(field string) zap.Field {
	return zap.Uint32(field, uint32(n))
}
