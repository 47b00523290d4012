// Package forward implements the forward-mode derivative calculator: it
// drives internal/interp with numeric.Dual in place of numeric.Real,
// sweeping the parameter vector in chunks of the dual dimension D and
// assembling a Jacobian of tree output with respect to those parameters.
// It reuses the primal interpreter unmodified — only the scalar type and
// the dispatch table's registrations change.
package forward

import (
	"fmt"

	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/interp"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
)

// StorageOrder selects how Jacobian entries are laid out in a flat
// output buffer.
type StorageOrder int

const (
	// RowMajor stores entry (row r, parameter i) at r*P + i.
	RowMajor StorageOrder = iota
	// ColumnMajor stores entry (row r, parameter i) at i*rows + r.
	ColumnMajor
)

func dualConstant(v float64, dim int) numeric.Dual {
	d := numeric.NewDual(dim)
	d.Real = v
	return d
}

// Jacobian computes ∂tree/∂coeff over rng and writes it into out, which
// must be sized rng.Size() * len(coeff). dim is the dual dimension D,
// typically 4 or 8; table must have its kernels registered for
// numeric.Dual (kernel.NewTable[numeric.Dual] does this for the built-in
// operator set).
func Jacobian(
	tree *expr.Tree,
	ds *dataset.Dataset,
	coeff []float64,
	rng dataset.Range,
	dim int,
	table *kernel.Table[numeric.Dual],
	batchSize int,
	order StorageOrder,
	out []float64,
) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	p := len(coeff)
	rows := rng.Size()
	if len(out) != rows*p {
		return fmt.Errorf("forward: jacobian buffer has %d slots, want %d", len(out), rows*p)
	}
	if dim <= 0 {
		return fmt.Errorf("forward: dual dimension must be positive, got %d", dim)
	}

	newScalar := func(v float64) numeric.Dual { return dualConstant(v, dim) }
	outputs := make([]numeric.Dual, rows)

	for s := 0; s < p; s += dim {
		end := s + dim
		if end > p {
			end = p
		}

		inputs := make([]numeric.Dual, p)
		for i := 0; i < p; i++ {
			inputs[i] = dualConstant(coeff[i], dim)
		}
		for i := s; i < end; i++ {
			inputs[i] = numeric.SeedDual(coeff[i], dim, i-s)
		}

		if err := interp.Evaluate(tree, ds, rng, table, inputs, newScalar, batchSize, outputs); err != nil {
			return fmt.Errorf("forward: chunk [%d,%d): %w", s, end, err)
		}

		for r := 0; r < rows; r++ {
			for i := s; i < end; i++ {
				val := outputs[r].Deriv[i-s]
				switch order {
				case ColumnMajor:
					out[i*rows+r] = val
				default:
					out[r*p+i] = val
				}
			}
		}
	}

	return nil
}

// JacobianMatrix allocates and returns the Jacobian, a convenience
// wrapper around Jacobian for callers that don't want to manage the
// output buffer themselves.
func JacobianMatrix(
	tree *expr.Tree,
	ds *dataset.Dataset,
	coeff []float64,
	rng dataset.Range,
	dim int,
	table *kernel.Table[numeric.Dual],
	batchSize int,
	order StorageOrder,
) ([]float64, error) {
	out := make([]float64, rng.Size()*len(coeff))
	if err := Jacobian(tree, ds, coeff, rng, dim, table, batchSize, order, out); err != nil {
		return nil, err
	}
	return out, nil
}
