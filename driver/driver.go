// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package driver provides the public API for the parallel multi-tree
// evaluator: many independent trees evaluated concurrently over the same
// dataset range.
package driver

import (
	"github.com/google/uuid"

	"github.com/born-ml/symexpr/eval"
	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/driver"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/numeric"
)

// EvaluateMany runs the primal interpreter over trees concurrently,
// writing each tree's output into its own row of out (row-major,
// len(trees) rows of rng.Size() each). nThreads selects the worker
// count; 0 picks automatically. Returns one correlation ID per tree
// task.
func EvaluateMany[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *eval.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	nThreads int,
	out []T,
) ([]uuid.UUID, error) {
	return driver.EvaluateMany(trees, ds, rng, table, parameters, newScalar, batchSize, nThreads, out)
}

// EvaluateManyTiled further splits each tree's row range into tiles of
// at most tileSize rows so the worker pool sees a (tree, tile) grid of
// tasks instead of one task per tree, useful when there are fewer trees
// than workers. Returns one correlation ID per (tree, tile) task.
func EvaluateManyTiled[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *eval.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	tileSize int,
	nThreads int,
	out []T,
) ([]uuid.UUID, error) {
	return driver.EvaluateManyTiled(trees, ds, rng, table, parameters, newScalar, batchSize, tileSize, nThreads, out)
}

// EvaluateManyMatrix allocates the output buffer and returns one slice
// per tree.
func EvaluateManyMatrix[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *eval.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	nThreads int,
) ([][]T, []uuid.UUID, error) {
	return driver.EvaluateManyMatrix(trees, ds, rng, table, parameters, newScalar, batchSize, nThreads)
}
