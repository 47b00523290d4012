// Package driver implements the parallel multi-tree evaluator: many
// independent trees are evaluated over the same dataset range and
// written into a shared, row-partitioned output buffer. It is a thin
// fork-join layer over internal/parallel's worker pool — each task is one
// full tree evaluation via internal/interp, and tasks share no mutable
// state, so no synchronization is needed beyond the final join.
package driver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/interp"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/parallel"
)

// EvaluateMany runs the primal interpreter over trees concurrently,
// writing each tree's output into its own row of out (row-major,
// len(trees) rows of rng.Size() each). parameters, if non-nil, supplies
// one optional parameter vector per tree (a nil entry means "use the
// tree's own values", per interp.Evaluate). nThreads selects the worker
// count; 0 picks automatically. Tasks carry no ordering guarantee: the
// returned correlation IDs identify which row a given uuid's task wrote,
// not the order tasks ran in.
//
// If any tree fails to evaluate, EvaluateMany still runs every other
// task to completion and returns the first error encountered by tree
// index.
func EvaluateMany[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *kernel.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	nThreads int,
	out []T,
) ([]uuid.UUID, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	size := rng.Size()
	if len(out) != len(trees)*size {
		return nil, fmt.Errorf("driver: output has %d slots, want %d (%d trees x %d rows)", len(out), len(trees)*size, len(trees), size)
	}
	if parameters != nil && len(parameters) != len(trees) {
		return nil, fmt.Errorf("driver: %d parameter vectors, want %d (one per tree)", len(parameters), len(trees))
	}

	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1
	if nThreads > 0 {
		cfg.Enabled = nThreads > 1
		cfg.NumWorkers = nThreads
	} else if nThreads == 0 {
		cfg.Enabled = cfg.NumWorkers > 1
	}

	ids := make([]uuid.UUID, len(trees))
	errs := make([]error, len(trees))

	parallel.For(len(trees), func(i int) {
		ids[i] = uuid.New()
		var params []T
		if parameters != nil {
			params = parameters[i]
		}
		row := out[i*size : (i+1)*size]
		if err := interp.Evaluate(trees[i], ds, rng, table, params, newScalar, batchSize, row); err != nil {
			errs[i] = fmt.Errorf("driver: tree %d (task %s): %w", i, ids[i], err)
		}
	}, cfg)

	for _, err := range errs {
		if err != nil {
			return ids, err
		}
	}
	return ids, nil
}

// EvaluateManyTiled parallelizes over the (tree, row-tile) grid rather
// than over trees alone, via parallel.ForBatch. EvaluateMany's one task
// per tree leaves goroutines idle whenever there are fewer trees than
// workers; splitting rng into tiles of at most tileSize rows gives each
// tree len(trees)-independent tasks to hand out too. Each (tree, tile)
// evaluation is independent of every other, the same block-independence
// guarantee EvaluateTiled relies on in internal/interp, so tiling changes
// nothing about the result, only how the work is scheduled.
func EvaluateManyTiled[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *kernel.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	tileSize int,
	nThreads int,
	out []T,
) ([]uuid.UUID, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	size := rng.Size()
	if len(out) != len(trees)*size {
		return nil, fmt.Errorf("driver: output has %d slots, want %d (%d trees x %d rows)", len(out), len(trees)*size, len(trees), size)
	}
	if parameters != nil && len(parameters) != len(trees) {
		return nil, fmt.Errorf("driver: %d parameter vectors, want %d (one per tree)", len(parameters), len(trees))
	}
	if tileSize <= 0 {
		tileSize = size
	}
	numTiles := (size + tileSize - 1) / tileSize
	if numTiles == 0 {
		numTiles = 1
	}

	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1
	if nThreads > 0 {
		cfg.Enabled = nThreads > 1
		cfg.NumWorkers = nThreads
	} else if nThreads == 0 {
		cfg.Enabled = cfg.NumWorkers > 1
	}

	ids := make([]uuid.UUID, len(trees)*numTiles)
	errs := make([]error, len(trees)*numTiles)

	parallel.ForBatch(len(trees), numTiles, func(treeIdx, tileIdx int) {
		task := treeIdx*numTiles + tileIdx
		ids[task] = uuid.New()

		start := rng.Start + tileIdx*tileSize
		end := start + tileSize
		if end > rng.End {
			end = rng.End
		}
		if start >= end {
			return
		}

		var params []T
		if parameters != nil {
			params = parameters[treeIdx]
		}
		row := out[treeIdx*size : (treeIdx+1)*size]
		offset := start - rng.Start
		tile := dataset.Range{Start: start, End: end}
		if err := interp.Evaluate(trees[treeIdx], ds, tile, table, params, newScalar, batchSize, row[offset:offset+tile.Size()]); err != nil {
			errs[task] = fmt.Errorf("driver: tree %d tile [%d,%d) (task %s): %w", treeIdx, start, end, ids[task], err)
		}
	}, cfg)

	for _, err := range errs {
		if err != nil {
			return ids, err
		}
	}
	return ids, nil
}

// EvaluateManyMatrix allocates the output buffer and returns one slice
// per tree, a convenience wrapper around EvaluateMany for callers that
// would otherwise have to slice the flat buffer themselves.
func EvaluateManyMatrix[T numeric.Value[T]](
	trees []*expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *kernel.Table[T],
	parameters [][]T,
	newScalar func(float64) T,
	batchSize int,
	nThreads int,
) ([][]T, []uuid.UUID, error) {
	size := rng.Size()
	out := make([]T, len(trees)*size)
	ids, err := EvaluateMany(trees, ds, rng, table, parameters, newScalar, batchSize, nThreads, out)
	if err != nil {
		return nil, ids, err
	}
	rows := make([][]T, len(trees))
	for i := range trees {
		rows[i] = out[i*size : (i+1)*size]
	}
	return rows, ids, nil
}
