package forward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/interp"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

func opNode(nodes []expr.Node, kind opcode.Kind, arity int) expr.Node {
	i := len(nodes)
	sum := 0
	c := i - 1
	for k := 0; k < arity; k++ {
		sum += int(nodes[c].Length) + 1
		c = expr.PrevSibling(nodes, c)
	}
	return expr.Node{Kind: kind, Arity: uint16(arity), Length: uint16(sum)}
}

// buildAXPlusB constructs a*X + b, with both a and b learnable.
func buildAXPlusB(hashX uint64) *expr.Tree {
	nodes := []expr.Node{
		{Kind: opcode.Constant, Value: 0, Optimize: true}, // a
		{Kind: opcode.Variable, Hash: hashX, Value: 1},
	}
	nodes = append(nodes, opNode(nodes, opcode.Mul, 2))
	nodes = append(nodes, expr.Node{Kind: opcode.Constant, Value: 0, Optimize: true}) // b
	nodes = append(nodes, opNode(nodes, opcode.Add, 2))
	tree, err := expr.New(nodes)
	if err != nil {
		panic(err)
	}
	return tree
}

// Scenario 7: Jacobian of a*X + b.
func TestJacobianOfAffineTree(t *testing.T) {
	const hashX = 1
	tree := buildAXPlusB(hashX)

	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: []float64{1, 2, 3}})
	require.NoError(t, err)

	table := kernel.NewTable[numeric.Dual]()
	rng := dataset.Range{Start: 0, End: 3}

	out, err := JacobianMatrix(tree, ds, []float64{2, 3}, rng, 4, table, 0, RowMajor)
	require.NoError(t, err)

	want := []float64{1, 1, 2, 1, 3, 1}
	assert.InDeltaSlice(t, want, out, 1e-12)
}

func TestJacobianStorageOrderEquivalence(t *testing.T) {
	const hashX = 1
	tree := buildAXPlusB(hashX)
	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: []float64{1, 2, 3, 4, 5}})
	require.NoError(t, err)

	table := kernel.NewTable[numeric.Dual]()
	rng := dataset.Range{Start: 0, End: 5}
	coeff := []float64{2, 3}

	rowMajor, err := JacobianMatrix(tree, ds, coeff, rng, 4, table, 0, RowMajor)
	require.NoError(t, err)
	colMajor, err := JacobianMatrix(tree, ds, coeff, rng, 4, table, 0, ColumnMajor)
	require.NoError(t, err)

	rows, p := rng.Size(), len(coeff)
	for r := 0; r < rows; r++ {
		for i := 0; i < p; i++ {
			assert.InDelta(t, rowMajor[r*p+i], colMajor[i*rows+r], 1e-12)
		}
	}
}

// Forward-mode consistency: the Jacobian matches a central
// finite-difference estimate against the primal interpreter.
func TestJacobianMatchesFiniteDifference(t *testing.T) {
	const hashX = 1
	tree := buildAXPlusB(hashX)
	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: []float64{1.5, -2.0, 3.25}})
	require.NoError(t, err)

	dualTable := kernel.NewTable[numeric.Dual]()
	realTable := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 3}
	coeff := []float64{2.0, -1.0}

	jac, err := JacobianMatrix(tree, ds, coeff, rng, 4, dualTable, 0, RowMajor)
	require.NoError(t, err)

	evalAt := func(c []float64) []float64 {
		params := make([]numeric.Real, len(c))
		for i, v := range c {
			params[i] = numeric.NewReal(v)
		}
		out := make([]numeric.Real, rng.Size())
		require.NoError(t, interp.Evaluate(tree, ds, rng, realTable, params, numeric.NewReal, 0, out))
		plain := make([]float64, len(out))
		for i, v := range out {
			plain[i] = float64(v)
		}
		return plain
	}

	const h = 1e-6
	p := len(coeff)
	for i := 0; i < p; i++ {
		plus := append([]float64(nil), coeff...)
		minus := append([]float64(nil), coeff...)
		plus[i] += h
		minus[i] -= h
		fPlus := evalAt(plus)
		fMinus := evalAt(minus)
		for r := 0; r < rng.Size(); r++ {
			fd := (fPlus[r] - fMinus[r]) / (2 * h)
			assert.True(t, math.Abs(fd-jac[r*p+i]) < 1e-5,
				"row %d param %d: finite diff %v vs jacobian %v", r, i, fd, jac[r*p+i])
		}
	}
}
