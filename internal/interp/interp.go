// Package interp implements the row-blocked primal interpreter: given a
// tree, a dataset, and a row range, it walks the tree once in postorder
// per row block, invoking dispatch-table kernels for inner nodes and
// resolving leaves directly, then copies the root's working column into
// the caller's output span.
//
// Evaluate is generic over numeric.Value[T] so the same walk drives both
// the primal scalar path and, from internal/forward, the dual-number
// derivative path — the table passed in is simply built for a different T.
package interp

import (
	"fmt"

	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

// DefaultBatchSize is the row-block width used when a caller passes 0.
const DefaultBatchSize = 64

// leafMeta is the one-time-per-call resolution of a leaf node's
// contribution: either a dataset column view (Variable) or a scalar
// value to broadcast (Constant). An arity-0 Dynamic node has no leafMeta
// entry: it is dispatched to its registered kernel or rejected.
type leafMeta[T numeric.Value[T]] struct {
	column []float64
	value  T
}

// Evaluate validates the call's preconditions, does the one-time
// per-node setup, then runs the row-block loop, writing into result
// (which must already be sized to rng.Size()).
//
// newScalar constructs a T from a plain float64, the broadcast factory
// a caller supplies per scalar type: for numeric.Real it is a trivial
// cast, for numeric.Dual it produces a zero-derivative value of the
// caller's chosen dual dimension.
func Evaluate[T numeric.Value[T]](
	tree *expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *kernel.Table[T],
	parameters []T,
	newScalar func(float64) T,
	batchSize int,
	result []T,
) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	if len(result) != rng.Size() {
		return fmt.Errorf("interp: result has %d slots, want %d", len(result), rng.Size())
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	nodes := tree.Nodes()
	buf := kernel.NewBuffer[T](len(nodes), batchSize)

	leaves := make([]leafMeta[T], len(nodes))
	kernels := make([]kernel.Kernel[T], len(nodes))
	isLeaf := make([]bool, len(nodes))

	paramIdx := 0
	for i, n := range nodes {
		// A node's structural leaf-ness is its Arity, not Kind.IsLeaf():
		// a user-registered Dynamic kernel may give Dynamic real children,
		// in which case it is evaluated like any other inner node despite
		// Dynamic being leaf-classified by default.
		isLeaf[i] = n.Arity == 0

		if n.Kind == opcode.Dynamic && isLeaf[i] {
			// A default-arity Dynamic leaf has no kernel of its own to
			// fall back on; require one to be registered rather than
			// silently leaving its column at its Go zero value. Once
			// confirmed, dispatch it through the kernel loop below like
			// any other registered op, even though it declares 0 children.
			if _, ok := table.TryGet(opcode.Dynamic); !ok {
				return fmt.Errorf("interp: node %d: no kernel registered for %s", i, n.Kind)
			}
			isLeaf[i] = false
		}
		if !isLeaf[i] {
			continue
		}

		if n.Kind == opcode.Variable {
			col, err := ds.View(n.Hash, rng)
			if err != nil {
				return fmt.Errorf("interp: node %d: %w", i, err)
			}
			leaves[i].column = col
			leaves[i].value = resolveParam(n, parameters, &paramIdx, newScalar)
			continue
		}

		value := resolveParam(n, parameters, &paramIdx, newScalar)
		leaves[i].value = value
		if n.Kind == opcode.Constant {
			col := buf.Col(i)
			for r := range col {
				col[r] = value
			}
		}
	}

	for i, n := range nodes {
		if isLeaf[i] {
			continue
		}
		k, ok := table.TryGet(n.Kind)
		if !ok {
			return fmt.Errorf("interp: node %d: no kernel registered for %s", i, n.Kind)
		}
		kernels[i] = k
	}

	root := len(nodes) - 1
	size := rng.Size()
	for row := 0; row < size; row += batchSize {
		width := batchSize
		if row+width > size {
			width = size - row
		}

		for i, n := range nodes {
			switch {
			case n.Kind == opcode.Variable:
				col := buf.Col(i)
				src := leaves[i].column[row : row+width]
				weight := leaves[i].value
				for r := 0; r < width; r++ {
					col[r] = weight.Mul(newScalar(src[r]))
				}
			case isLeaf[i]:
				// Constant columns were preloaded once above; this is
				// the only remaining leaf case, since an unregistered
				// arity-0 Dynamic was already rejected during setup.
			default:
				kernels[i](buf, nodes, i, width)
			}
		}

		copy(result[row:row+width], buf.Col(root)[:width])
	}

	return nil
}

// resolveParam implements the "effective param" rule: when parameters is
// non-nil and the node's Optimize bit is set, consume the next entry in
// tree order; otherwise broadcast the node's own Value.
func resolveParam[T numeric.Value[T]](n expr.Node, parameters []T, idx *int, newScalar func(float64) T) T {
	if parameters != nil && n.Optimize {
		p := parameters[*idx]
		*idx++
		return p
	}
	return newScalar(n.Value)
}

// EvaluateTiled tiles rng into chunks no wider than tileSize and calls
// Evaluate once per tile. The output is identical to a single Evaluate
// over the whole range. It does not lower peak memory: each Evaluate call
// sizes its working buffer by node count and batchSize, not by the range.
func EvaluateTiled[T numeric.Value[T]](
	tree *expr.Tree,
	ds *dataset.Dataset,
	rng dataset.Range,
	table *kernel.Table[T],
	parameters []T,
	newScalar func(float64) T,
	batchSize int,
	tileSize int,
	result []T,
) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	if tileSize <= 0 {
		tileSize = rng.Size()
	}
	for start := rng.Start; start < rng.End; start += tileSize {
		end := start + tileSize
		if end > rng.End {
			end = rng.End
		}
		tile := dataset.Range{Start: start, End: end}
		offset := start - rng.Start
		if err := Evaluate(tree, ds, tile, table, parameters, newScalar, batchSize, result[offset:offset+tile.Size()]); err != nil {
			return err
		}
	}
	return nil
}
