package expr

import (
	"fmt"

	"github.com/born-ml/symexpr/internal/opcode"
)

// Tree is an ordered, postorder sequence of nodes. A *Tree is always
// non-empty and always internally consistent — Validate runs once at
// construction so the hot interpreter loop never has to defend against a
// malformed length/arity field.
type Tree struct {
	nodes []Node
}

// New validates nodes against the postorder invariants and wraps them in
// a Tree. The slice is not copied; callers must not mutate it after
// constructing a Tree from it — a Tree is read-only for the rest of its
// lifecycle.
func New(nodes []Node) (*Tree, error) {
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return &Tree{nodes: nodes}, nil
}

// Nodes returns the tree's postorder node array.
func (t *Tree) Nodes() []Node { return t.nodes }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the tree's root node, which is always the last element of
// a valid postorder encoding.
func (t *Tree) Root() Node { return t.nodes[len(t.nodes)-1] }

// PrevSibling returns the index of the immediately preceding sibling
// (toward the left) of the child at index i within its parent's child
// list, following the sibling-stride recurrence: the next child after i
// is at i - (length[i] + 1).
func PrevSibling(nodes []Node, i int) int {
	return i - int(nodes[i].Length) - 1
}

// Children returns the indices of node p's direct children, in left-to-
// right order, using the sibling-stride recurrence c0 = p-1,
// c(k+1) = c(k) - (length[c(k)] + 1).
func Children(nodes []Node, p int) []int {
	arity := int(nodes[p].Arity)
	if arity == 0 {
		return nil
	}
	children := make([]int, arity)
	c := p - 1
	for k := 0; k < arity; k++ {
		children[k] = c
		c = PrevSibling(nodes, c)
	}
	// Children were discovered right-to-left (c0 is the rightmost
	// child); reverse into left-to-right order.
	for l, r := 0, len(children)-1; l < r; l, r = l+1, r-1 {
		children[l], children[r] = children[r], children[l]
	}
	return children
}

// Validate checks a candidate node slice against the postorder
// invariants: non-empty, consistent Arity against the node kind's legal
// arity, Length consistent with the sum of each child's subtree size, the
// root's Length spanning the whole array, and Optimize only set on
// leaves.
func Validate(nodes []Node) error {
	if len(nodes) == 0 {
		return fmt.Errorf("expr: empty tree")
	}

	for i, n := range nodes {
		if n.Optimize && !n.IsLeaf() {
			return fmt.Errorf("expr: node %d (%s): optimize is only defined on leaf nodes", i, n.Kind)
		}

		if n.Kind != opcode.Dynamic {
			if fixed, ok := n.Kind.FixedArity(); ok {
				if int(n.Arity) != fixed {
					return fmt.Errorf("expr: node %d (%s): arity %d, want %d", i, n.Kind, n.Arity, fixed)
				}
			} else if int(n.Arity) < n.Kind.MinArity() {
				return fmt.Errorf("expr: node %d (%s): arity %d below minimum %d", i, n.Kind, n.Arity, n.Kind.MinArity())
			}
		}

		sum := 0
		c := i - 1
		for k := 0; k < int(n.Arity); k++ {
			if c < 0 {
				return fmt.Errorf("expr: node %d (%s): declares %d children but tree runs out of nodes", i, n.Kind, n.Arity)
			}
			sum += int(nodes[c].Length) + 1
			c = PrevSibling(nodes, c)
		}
		if int(n.Length) != sum {
			return fmt.Errorf("expr: node %d (%s): length %d inconsistent with children (want %d)", i, n.Kind, n.Length, sum)
		}
		if i-sum < 0 {
			return fmt.Errorf("expr: node %d (%s): subtree of length %d would start before index 0", i, n.Kind, n.Length)
		}
	}

	root := nodes[len(nodes)-1]
	if int(root.Length) != len(nodes)-1 {
		return fmt.Errorf("expr: root length %d does not span the tree (want %d)", root.Length, len(nodes)-1)
	}

	return nil
}
