// Package main provides the symexpr CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/symexpr/dataset"
	"github.com/born-ml/symexpr/eval"
	"github.com/born-ml/symexpr/expr"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("symexpr %s\n", version)
		return
	}
	if len(os.Args) > 1 && os.Args[1] == "demo" {
		runDemo()
		return
	}

	fmt.Println("symexpr - expression-tree evaluation core")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Evaluate a·X + b and its Jacobian over a tiny inline dataset")
}

// binaryOp returns the node for a two-child operator whose children are
// the last two subtrees in nodes, computing Length from the
// sibling-stride recurrence; the caller appends it.
func binaryOp(nodes []expr.Node, kind expr.Kind) expr.Node {
	i := len(nodes)
	c0 := i - 1
	c1 := expr.PrevSibling(nodes, c0)
	length := int(nodes[c0].Length) + 1 + int(nodes[c1].Length) + 1
	return expr.Node{Kind: kind, Arity: 2, Length: uint16(length)}
}

// runDemo builds a·X + b, evaluates it, and prints the Jacobian with
// respect to a and b — a worked instance of the primal and forward-mode
// surfaces this module exposes.
func runDemo() {
	const hashX uint64 = 0x5858585858585858

	nodes := []expr.Node{
		{Kind: expr.Constant, Value: 2, Optimize: true},
		{Kind: expr.Variable, Hash: hashX, Value: 1},
	}
	nodes = append(nodes, binaryOp(nodes, expr.Mul))
	nodes = append(nodes, expr.Node{Kind: expr.Constant, Value: 3, Optimize: true})
	nodes = append(nodes, binaryOp(nodes, expr.Add))

	tree, err := expr.New(nodes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: invalid tree:", err)
		os.Exit(1)
	}

	ds, err := dataset.New(dataset.Column{Hash: hashX, Values: []float64{1, 2, 3, 4}})
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: invalid dataset:", err)
		os.Exit(1)
	}

	rng := dataset.Range{Start: 0, End: ds.Rows()}
	realTable := eval.NewTable[eval.Real]()
	out, err := eval.EvaluateVector(tree, ds, rng, realTable, nil, eval.NewReal, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: evaluate:", err)
		os.Exit(1)
	}
	fmt.Print("2*X + 3 = [")
	for i, v := range out {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%v", float64(v))
	}
	fmt.Println("]")

	dualTable := eval.NewTable[eval.Dual]()
	jac, err := eval.JacobianMatrix(tree, ds, []float64{2, 3}, rng, 4, dualTable, 0, eval.RowMajor)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: jacobian:", err)
		os.Exit(1)
	}
	fmt.Println("Jacobian rows [d/da, d/db]:")
	for r := 0; r < rng.Size(); r++ {
		fmt.Printf("  [%v, %v]\n", jac[r*2], jac[r*2+1])
	}
}
