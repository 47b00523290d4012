package kernel

import (
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

// fold builds a kernel for a variadic binary op: the parent's column
// becomes op applied left to right over its children's columns,
// a·op·b·op·c·... . Sub and Div are not commutative so left-to-right
// association is load-bearing, not incidental: a-b-c-d == a-(b+c+d) and
// a/b/c/d == a/(b*c*d), which is why a simple fold (rather than a
// "subtract the sum of the rest" special case) is correct for both.
//
// Children after the first are visited in runs of up to 5, mirroring the
// chunk width the engine this was ported from uses for its SIMD folds.
// Within a run each child is folded straight into the single running
// accumulator, one binary op call per child; there is no fused
// multi-operand kernel, and the grouping changes neither the result nor
// the order of operations.
const foldChunk = 5

// arity1 supplies the single-child transform for ops that are not the
// identity on their sole operand (Sub negates, Div inverts); nil for ops
// where folding a lone child through the loop already is the identity
// (Add, Mul, Fmax, Fmin).
func fold[T numeric.Value[T]](op func(a, b T) T, arity1 func(a T) T) Kernel[T] {
	return func(buf *Buffer[T], nodes []expr.Node, p, width int) {
		children := expr.Children(nodes, p)
		out := buf.Col(p)
		first := buf.Col(children[0])

		if len(children) == 1 {
			if arity1 == nil {
				copy(out[:width], first[:width])
				return
			}
			for r := 0; r < width; r++ {
				out[r] = arity1(first[r])
			}
			return
		}

		copy(out[:width], first[:width])
		for i := 1; i < len(children); i += foldChunk {
			end := i + foldChunk
			if end > len(children) {
				end = len(children)
			}
			for _, c := range children[i:end] {
				col := buf.Col(c)
				for r := 0; r < width; r++ {
					out[r] = op(out[r], col[r])
				}
			}
		}
	}
}

func binary[T numeric.Value[T]](op func(a, b T) T) Kernel[T] {
	return func(buf *Buffer[T], nodes []expr.Node, p, width int) {
		children := expr.Children(nodes, p)
		a := buf.Col(children[0])
		b := buf.Col(children[1])
		out := buf.Col(p)
		for r := 0; r < width; r++ {
			out[r] = op(a[r], b[r])
		}
	}
}

func (t *Table[T]) registerArithmetic() {
	t.Register(opcode.Add, fold[T](func(a, b T) T { return a.Add(b) }, nil))
	t.Register(opcode.Sub, fold[T](func(a, b T) T { return a.Sub(b) }, func(a T) T { return a.Neg() }))
	t.Register(opcode.Mul, fold[T](func(a, b T) T { return a.Mul(b) }, nil))
	t.Register(opcode.Div, fold[T](func(a, b T) T { return a.Div(b) }, func(a T) T { return a.Recip() }))
	t.Register(opcode.Fmax, fold[T](func(a, b T) T { return a.Fmax(b) }, nil))
	t.Register(opcode.Fmin, fold[T](func(a, b T) T { return a.Fmin(b) }, nil))

	t.Register(opcode.Aq, binary[T](func(a, b T) T { return a.Aq(b) }))
	t.Register(opcode.Pow, binary[T](func(a, b T) T { return a.Pow(b) }))
}
