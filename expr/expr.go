// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides the public API for expression-tree construction
// and validation.
//
// The package re-exports the postorder tree encoding used by the
// evaluation engine:
//   - Node: the per-node record (kind, arity, length, value, weight)
//   - Tree: a validated, read-only postorder node sequence
//   - Kind: the closed enumeration of node kinds
//
// Example:
//
//	nodes := []expr.Node{
//		{Kind: expr.Variable, Hash: hashX, Value: 2.0},
//	}
//	tree, err := expr.New(nodes)
package expr

import (
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/opcode"
)

// Node is the per-node record of a postorder-encoded tree.
type Node = expr.Node

// Tree is a validated, read-only postorder node sequence.
type Tree = expr.Tree

// Kind is the closed enumeration of expression-tree node kinds.
type Kind = opcode.Kind

// Node kind constants.
const (
	Add  = opcode.Add
	Sub  = opcode.Sub
	Mul  = opcode.Mul
	Div  = opcode.Div
	Aq   = opcode.Aq
	Fmax = opcode.Fmax
	Fmin = opcode.Fmin
	Pow  = opcode.Pow

	Abs     = opcode.Abs
	Acos    = opcode.Acos
	Asin    = opcode.Asin
	Atan    = opcode.Atan
	Cbrt    = opcode.Cbrt
	Ceil    = opcode.Ceil
	Cos     = opcode.Cos
	Cosh    = opcode.Cosh
	Exp     = opcode.Exp
	Floor   = opcode.Floor
	Log     = opcode.Log
	Logabs  = opcode.Logabs
	Log1p   = opcode.Log1p
	Sin     = opcode.Sin
	Sinh    = opcode.Sinh
	Sqrt    = opcode.Sqrt
	Sqrtabs = opcode.Sqrtabs
	Tan     = opcode.Tan
	Tanh    = opcode.Tanh
	Square  = opcode.Square

	Dynamic  = opcode.Dynamic
	Constant = opcode.Constant
	Variable = opcode.Variable
)

// New validates nodes against the postorder invariants and wraps them in
// a Tree. The slice is not copied; callers must not mutate it afterward.
func New(nodes []Node) (*Tree, error) { return expr.New(nodes) }

// Validate checks a candidate node slice without constructing a Tree.
func Validate(nodes []Node) error { return expr.Validate(nodes) }

// Children returns the indices of node p's direct children, left to
// right, using the sibling-stride recurrence.
func Children(nodes []Node, p int) []int { return expr.Children(nodes, p) }

// PrevSibling returns the index of the preceding sibling of the child at
// index i within its parent's child list.
func PrevSibling(nodes []Node, i int) int { return expr.PrevSibling(nodes, i) }
