// Package expr implements the postorder tree encoding: a flat, read-only
// array of nodes where every node appears after all of its descendants
// and the root is the last element. The sibling-stride and prefix-subtree
// invariants this layout guarantees are what let the interpreter
// (internal/interp) walk the tree with a single linear sweep instead of
// pointer-chasing a linked structure.
package expr

import "github.com/born-ml/symexpr/internal/opcode"

// Node is the per-node record of a postorder-encoded tree.
type Node struct {
	Kind opcode.Kind

	// Hash is the node's intrinsic identity: for Variable nodes, the
	// hash of the dataset column it reads; for operators, a value
	// derived from Kind. CalculatedHash is the structural hash of the
	// subtree rooted here, set by a separate hashing pass external to
	// this package — it is not read by the interpreter.
	Hash           uint64
	CalculatedHash uint64

	// Value is the constant's value for Constant nodes, or the
	// multiplicative weight applied to the column for Variable nodes.
	// Unused for operator nodes.
	Value float64

	// Optimize marks Value as a learnable parameter, consumed by the
	// forward-mode derivative calculator (internal/forward). Only legal
	// on leaf nodes; Validate rejects it elsewhere.
	Optimize bool

	// Arity is the node's direct child count. Length is the size of its
	// subtree excluding itself. Both are bounded to 16 bits.
	Arity  uint16
	Length uint16

	// Depth, Level, and Parent are bookkeeping fields not read by the
	// primal interpreter.
	Depth  uint16
	Level  uint16
	Parent uint16

	// Enabled is a diagnostic flag; evaluating a tree with a disabled
	// node is undefined and is the caller's responsibility to avoid.
	Enabled bool
}

// IsLeaf reports whether the node's kind has arity 0.
func (n Node) IsLeaf() bool { return n.Kind.IsLeaf() }
