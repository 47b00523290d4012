// Package kernel implements the dispatch table and the per-batch kernels
// the primal interpreter and the forward-mode derivative calculator both
// drive. A Kernel is written once, generic over numeric.Value[T], and the
// same Table[T] construction instantiates it for both the primal scalar
// (numeric.Real) and the dual scalar (numeric.Dual) — one kernel per
// scalar type, registered once and shared by every tree that uses it.
package kernel

import (
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

// Buffer is the working buffer: one column of batchSize scalars per tree
// node, laid out column-major in a single flat slice so a node's column
// is always contiguous.
type Buffer[T any] struct {
	data      []T
	batchSize int
}

// NewBuffer allocates a working buffer sized for numNodes columns of
// batchSize scalars each. It is allocated once per interpreter call, not
// once per row block.
func NewBuffer[T any](numNodes, batchSize int) *Buffer[T] {
	return &Buffer[T]{
		data:      make([]T, numNodes*batchSize),
		batchSize: batchSize,
	}
}

// Col returns node i's working column. Only the first `width` entries are
// meaningful for the current row block; callers must not read beyond it.
func (b *Buffer[T]) Col(i int) []T {
	return b.data[i*b.batchSize : (i+1)*b.batchSize]
}

// Kernel is the uniform per-batch kernel signature: given the working
// buffer, the tree's node array, the index of the node to evaluate, and
// the active row-block width, it writes parentIndex's column in place.
type Kernel[T numeric.Value[T]] func(buf *Buffer[T], nodes []expr.Node, parentIndex, width int)

// Table is a dispatch table mapping node kind to kernel for one scalar
// type T. Registration is keyed by opcode.Kind's stable ordinal. Leaves
// never have an entry; TryGet reports that absence the same way it
// reports an unregistered Dynamic node, so callers cannot tell the two
// apart except by checking the kind themselves (Kind.IsLeaf() does not
// separate them, since it reports Dynamic as a leaf too).
type Table[T numeric.Value[T]] struct {
	kernels [opcode.Count]Kernel[T]
	has     [opcode.Count]bool
}

// NewTable builds a dispatch table with every built-in operator kind
// registered for scalar type T. Dynamic is intentionally left
// unregistered: a tree using it must Register a kernel for it explicitly
// or evaluation fails as a precondition violation.
func NewTable[T numeric.Value[T]]() *Table[T] {
	t := &Table[T]{}
	t.registerArithmetic()
	t.registerUnary()
	return t
}

// Register adds or replaces the kernel for kind. Used both internally to
// build the built-in table and externally to supply a Dynamic kernel.
func (t *Table[T]) Register(kind opcode.Kind, k Kernel[T]) {
	t.kernels[kind] = k
	t.has[kind] = true
}

// TryGet returns the kernel registered for kind, or false if none is
// registered (always false for leaf kinds and for an unregistered
// Dynamic).
func (t *Table[T]) TryGet(kind opcode.Kind) (Kernel[T], bool) {
	if !t.has[kind] {
		return nil, false
	}
	return t.kernels[kind], true
}
