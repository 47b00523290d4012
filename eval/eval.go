// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eval provides the public API for the primal interpreter and
// the forward-mode derivative calculator.
//
// Example:
//
//	table := eval.NewTable[eval.Real]()
//	out, err := eval.EvaluateVector(tree, ds, rng, table, nil, eval.NewReal, 0)
//
//	jac, err := eval.JacobianMatrix(tree, ds, coeff, rng, 4, dualTable, 0, eval.RowMajor)
package eval

import (
	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/forward"
	"github.com/born-ml/symexpr/internal/interp"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
)

// Real is the primal scalar type.
type Real = numeric.Real

// Dual is the forward-mode automatic-differentiation scalar type.
type Dual = numeric.Dual

// NewReal is the scalar broadcast factory Evaluate needs to lift a plain
// float64 into the primal working scalar type.
func NewReal(v float64) Real { return numeric.NewReal(v) }

// NewDual builds a zero-derivative dual scalar with dim lanes.
func NewDual(dim int) Dual { return numeric.NewDual(dim) }

// SeedDual builds a dual scalar with a unit derivative in lane.
func SeedDual(v float64, dim, lane int) Dual { return numeric.SeedDual(v, dim, lane) }

// Table maps (node kind, scalar type) to a per-batch kernel.
type Table[T numeric.Value[T]] = kernel.Table[T]

// NewTable builds a dispatch table with every built-in operator
// registered for scalar type T. A user-defined Dynamic kernel can be
// added afterward with Table.Register.
func NewTable[T numeric.Value[T]]() *Table[T] { return kernel.NewTable[T]() }

// DefaultBatchSize is the row-block width used when a caller passes 0.
const DefaultBatchSize = interp.DefaultBatchSize

// Evaluate writes tree's output over rng into result, which must already
// be sized to rng.Size().
func Evaluate[T numeric.Value[T]](
	tree *expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *Table[T],
	parameters []T,
	newScalar func(float64) T,
	batchSize int,
	result []T,
) error {
	return interp.Evaluate(tree, ds, rng, table, parameters, newScalar, batchSize, result)
}

// EvaluateVector allocates and returns tree's output over rng.
func EvaluateVector[T numeric.Value[T]](
	tree *expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *Table[T],
	parameters []T,
	newScalar func(float64) T,
	batchSize int,
) ([]T, error) {
	result := make([]T, rng.Size())
	if err := Evaluate(tree, ds, rng, table, parameters, newScalar, batchSize, result); err != nil {
		return nil, err
	}
	return result, nil
}

// EvaluateTiled tiles rng into chunks no wider than tileSize and
// evaluates each in turn; the output is identical to a single Evaluate
// over the whole range.
func EvaluateTiled[T numeric.Value[T]](
	tree *expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *Table[T],
	parameters []T,
	newScalar func(float64) T,
	batchSize int,
	tileSize int,
	result []T,
) error {
	return interp.EvaluateTiled(tree, ds, rng, table, parameters, newScalar, batchSize, tileSize, result)
}

// StorageOrder selects how Jacobian entries are laid out in a flat
// output buffer.
type StorageOrder = forward.StorageOrder

// Storage order constants.
const (
	RowMajor    = forward.RowMajor
	ColumnMajor = forward.ColumnMajor
)

// Jacobian computes ∂tree/∂coeff over rng and writes it into out, sized
// rng.Size() * len(coeff).
func Jacobian(
	tree *expr.Tree,
	ds *dataset.Dataset,
	coeff []float64,
	rng dataset.Range,
	dim int,
	table *Table[Dual],
	batchSize int,
	order StorageOrder,
	out []float64,
) error {
	return forward.Jacobian(tree, ds, coeff, rng, dim, table, batchSize, order, out)
}

// JacobianMatrix allocates and returns the Jacobian.
func JacobianMatrix(
	tree *expr.Tree,
	ds *dataset.Dataset,
	coeff []float64,
	rng dataset.Range,
	dim int,
	table *Table[Dual],
	batchSize int,
	order StorageOrder,
) ([]float64, error) {
	return forward.JacobianMatrix(tree, ds, coeff, rng, dim, table, batchSize, order)
}
