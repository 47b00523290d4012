package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/symexpr/internal/dataset"
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/kernel"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

func constantTree(v float64) *expr.Tree {
	tree, err := expr.New([]expr.Node{{Kind: opcode.Constant, Value: v}})
	if err != nil {
		panic(err)
	}
	return tree
}

func variableTree(hash uint64, weight float64) *expr.Tree {
	tree, err := expr.New([]expr.Node{{Kind: opcode.Variable, Hash: hash, Value: weight}})
	if err != nil {
		panic(err)
	}
	return tree
}

func TestEvaluateManyPartitionsOutputByTree(t *testing.T) {
	const hashX = 1
	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: []float64{1, 2, 3}})
	require.NoError(t, err)

	trees := []*expr.Tree{
		constantTree(5),
		variableTree(hashX, 10),
	}

	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 3}
	out := make([]numeric.Real, len(trees)*rng.Size())

	ids, err := EvaluateMany(trees, ds, rng, table, nil, numeric.NewReal, 0, 0, out)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])

	row0 := out[0:3]
	row1 := out[3:6]
	for _, v := range row0 {
		assert.Equal(t, 5.0, float64(v))
	}
	assert.Equal(t, []float64{10, 20, 30}, toFloat(row1))
}

func toFloat(vs []numeric.Real) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

func TestEvaluateManyRejectsMismatchedParameterCount(t *testing.T) {
	ds, err := dataset.New()
	require.NoError(t, err)
	trees := []*expr.Tree{constantTree(1), constantTree(2)}
	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 1}
	out := make([]numeric.Real, 2)

	_, err = EvaluateMany(trees, ds, rng, table, [][]numeric.Real{{}}, numeric.NewReal, 0, 0, out)
	assert.Error(t, err)
}

func TestEvaluateManyMatrixConvenienceWrapper(t *testing.T) {
	ds, err := dataset.New()
	require.NoError(t, err)
	trees := []*expr.Tree{constantTree(1), constantTree(2), constantTree(3)}
	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 2}

	rows, ids, err := EvaluateManyMatrix(trees, ds, rng, table, nil, numeric.NewReal, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Len(t, ids, 3)
	assert.Equal(t, []float64{1, 1}, toFloat(rows[0]))
	assert.Equal(t, []float64{2, 2}, toFloat(rows[1]))
	assert.Equal(t, []float64{3, 3}, toFloat(rows[2]))
}

func TestEvaluateManyTiledMatchesEvaluateMany(t *testing.T) {
	const hashX = 1
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i)
	}
	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: values})
	require.NoError(t, err)

	trees := []*expr.Tree{constantTree(5), variableTree(hashX, 2)}
	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 50}

	untiled := make([]numeric.Real, len(trees)*rng.Size())
	_, err = EvaluateMany(trees, ds, rng, table, nil, numeric.NewReal, 0, 0, untiled)
	require.NoError(t, err)

	tiled := make([]numeric.Real, len(trees)*rng.Size())
	ids, err := EvaluateManyTiled(trees, ds, rng, table, nil, numeric.NewReal, 0, 7, 0, tiled)
	require.NoError(t, err)
	assert.Len(t, ids, len(trees)*((50+6)/7))

	assert.Equal(t, toFloat(untiled), toFloat(tiled))
}

func TestEvaluateManyTiledPropagatesPerTreeError(t *testing.T) {
	ds, err := dataset.New()
	require.NoError(t, err)

	badNodes := []expr.Node{{Kind: opcode.Constant, Value: 1}}
	badNodes = append(badNodes, expr.Node{Kind: opcode.Dynamic, Arity: 1, Length: 1})
	badTree, err := expr.New(badNodes)
	require.NoError(t, err)

	trees := []*expr.Tree{constantTree(1), badTree}
	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 1}
	out := make([]numeric.Real, 2)

	_, err = EvaluateManyTiled(trees, ds, rng, table, nil, numeric.NewReal, 0, 1, 0, out)
	assert.Error(t, err)
}

func TestEvaluateManyPropagatesPerTreeError(t *testing.T) {
	ds, err := dataset.New()
	require.NoError(t, err)

	badNodes := []expr.Node{{Kind: opcode.Constant, Value: 1}}
	badNodes = append(badNodes, expr.Node{Kind: opcode.Dynamic, Arity: 1, Length: 1})
	badTree, err := expr.New(badNodes)
	require.NoError(t, err)

	trees := []*expr.Tree{constantTree(1), badTree}
	table := kernel.NewTable[numeric.Real]()
	rng := dataset.Range{Start: 0, End: 1}
	out := make([]numeric.Real, 2)

	_, err = EvaluateMany(trees, ds, rng, table, nil, numeric.NewReal, 0, 0, out)
	assert.Error(t, err)
}
