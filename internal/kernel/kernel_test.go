package kernel

import (
	"math"
	"testing"

	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

const width = 1

func constant(v float64) expr.Node {
	return expr.Node{Kind: opcode.Constant, Value: v}
}

// op builds an operator node over the preceding `arity` nodes in nodes,
// computing Length via the same sum-of-children-subtree-sizes rule
// expr.Validate checks.
func op(nodes []expr.Node, kind opcode.Kind, arity int) expr.Node {
	i := len(nodes)
	sum := 0
	c := i - 1
	for k := 0; k < arity; k++ {
		sum += int(nodes[c].Length) + 1
		c = expr.PrevSibling(nodes, c)
	}
	return expr.Node{Kind: kind, Arity: uint16(arity), Length: uint16(sum)}
}

func seedBuffer(nodes []expr.Node) *Buffer[numeric.Real] {
	buf := NewBuffer[numeric.Real](len(nodes), width)
	for i, n := range nodes {
		if n.Kind == opcode.Constant {
			buf.Col(i)[0] = numeric.NewReal(n.Value)
		}
	}
	return buf
}

func TestAddFold(t *testing.T) {
	nodes := []expr.Node{constant(1), constant(2), constant(3)}
	nodes = append(nodes, op(nodes, opcode.Add, 3))
	if _, err := expr.New(nodes); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}

	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, ok := table.TryGet(opcode.Add)
	if !ok {
		t.Fatal("no kernel registered for Add")
	}
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); got != 6 {
		t.Errorf("Add(1,2,3) = %v, want 6", got)
	}
}

func TestSubFoldIsLeftAssociative(t *testing.T) {
	nodes := []expr.Node{constant(10), constant(2), constant(3)}
	nodes = append(nodes, op(nodes, opcode.Sub, 3))
	if _, err := expr.New(nodes); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}

	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Sub)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	// (10-2)-3 == 10-(2+3) == 5
	if got := float64(buf.Col(root)[0]); got != 5 {
		t.Errorf("Sub(10,2,3) = %v, want 5", got)
	}
}

func TestDivFoldMatchesProductOfDivisors(t *testing.T) {
	nodes := []expr.Node{constant(100), constant(2), constant(5)}
	nodes = append(nodes, op(nodes, opcode.Div, 3))
	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Div)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); got != 10 {
		t.Errorf("Div(100,2,5) = %v, want 10", got)
	}
}

func TestSubFoldArity1Negates(t *testing.T) {
	nodes := []expr.Node{constant(7)}
	nodes = append(nodes, op(nodes, opcode.Sub, 1))
	if _, err := expr.New(nodes); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}

	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Sub)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); got != -7 {
		t.Errorf("Sub(7) = %v, want -7", got)
	}
}

func TestDivFoldArity1Inverts(t *testing.T) {
	nodes := []expr.Node{constant(4)}
	nodes = append(nodes, op(nodes, opcode.Div, 1))
	if _, err := expr.New(nodes); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}

	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Div)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); got != 0.25 {
		t.Errorf("Div(4) = %v, want 0.25", got)
	}
}

func TestUnaryCos(t *testing.T) {
	nodes := []expr.Node{constant(0)}
	nodes = append(nodes, op(nodes, opcode.Cos, 1))
	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Cos)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); math.Abs(got-1) > 1e-12 {
		t.Errorf("Cos(0) = %v, want 1", got)
	}
}

func TestSqrtabsComposite(t *testing.T) {
	nodes := []expr.Node{constant(-9)}
	nodes = append(nodes, op(nodes, opcode.Sqrtabs, 1))
	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Sqrtabs)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); math.Abs(got-3) > 1e-12 {
		t.Errorf("Sqrtabs(-9) = %v, want 3", got)
	}
}

func TestAqHasNoPoleAtZero(t *testing.T) {
	nodes := []expr.Node{constant(4), constant(0)}
	nodes = append(nodes, op(nodes, opcode.Aq, 2))
	buf := seedBuffer(nodes)
	table := NewTable[numeric.Real]()
	k, _ := table.TryGet(opcode.Aq)
	root := len(nodes) - 1
	k(buf, nodes, root, width)

	if got := float64(buf.Col(root)[0]); got != 4 {
		t.Errorf("Aq(4,0) = %v, want 4", got)
	}
}

func TestDynamicUnregisteredByDefault(t *testing.T) {
	table := NewTable[numeric.Real]()
	if _, ok := table.TryGet(opcode.Dynamic); ok {
		t.Error("Dynamic should have no default kernel")
	}
}

func TestRegisterCustomDynamicKernel(t *testing.T) {
	table := NewTable[numeric.Real]()
	table.Register(opcode.Dynamic, unary[numeric.Real](func(a numeric.Real) numeric.Real { return a.Square() }))

	nodes := []expr.Node{constant(3)}
	nodes = append(nodes, op(nodes, opcode.Dynamic, 1))
	buf := seedBuffer(nodes)
	k, ok := table.TryGet(opcode.Dynamic)
	if !ok {
		t.Fatal("expected Dynamic kernel after Register")
	}
	root := len(nodes) - 1
	k(buf, nodes, root, width)
	if got := float64(buf.Col(root)[0]); got != 9 {
		t.Errorf("custom Dynamic(3) = %v, want 9", got)
	}
}
