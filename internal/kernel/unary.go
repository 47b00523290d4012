package kernel

import (
	"github.com/born-ml/symexpr/internal/expr"
	"github.com/born-ml/symexpr/internal/numeric"
	"github.com/born-ml/symexpr/internal/opcode"
)

func unary[T numeric.Value[T]](op func(a T) T) Kernel[T] {
	return func(buf *Buffer[T], nodes []expr.Node, p, width int) {
		children := expr.Children(nodes, p)
		a := buf.Col(children[0])
		out := buf.Col(p)
		for r := 0; r < width; r++ {
			out[r] = op(a[r])
		}
	}
}

func (t *Table[T]) registerUnary() {
	t.Register(opcode.Abs, unary[T](func(a T) T { return a.Abs() }))
	t.Register(opcode.Acos, unary[T](func(a T) T { return a.Acos() }))
	t.Register(opcode.Asin, unary[T](func(a T) T { return a.Asin() }))
	t.Register(opcode.Atan, unary[T](func(a T) T { return a.Atan() }))
	t.Register(opcode.Cbrt, unary[T](func(a T) T { return a.Cbrt() }))
	t.Register(opcode.Ceil, unary[T](func(a T) T { return a.Ceil() }))
	t.Register(opcode.Cos, unary[T](func(a T) T { return a.Cos() }))
	t.Register(opcode.Cosh, unary[T](func(a T) T { return a.Cosh() }))
	t.Register(opcode.Exp, unary[T](func(a T) T { return a.Exp() }))
	t.Register(opcode.Floor, unary[T](func(a T) T { return a.Floor() }))
	t.Register(opcode.Log, unary[T](func(a T) T { return a.Log() }))
	t.Register(opcode.Log1p, unary[T](func(a T) T { return a.Log1p() }))
	t.Register(opcode.Sin, unary[T](func(a T) T { return a.Sin() }))
	t.Register(opcode.Sinh, unary[T](func(a T) T { return a.Sinh() }))
	t.Register(opcode.Sqrt, unary[T](func(a T) T { return a.Sqrt() }))
	t.Register(opcode.Tan, unary[T](func(a T) T { return a.Tan() }))
	t.Register(opcode.Tanh, unary[T](func(a T) T { return a.Tanh() }))
	t.Register(opcode.Square, unary[T](func(a T) T { return a.Square() }))

	// Logabs and Sqrtabs are composites of the absolute-value guarded
	// forms Log(|x|) and Sqrt(|x|); there is no dedicated Value method for
	// either since they are never needed standalone, only chained with Abs.
	t.Register(opcode.Logabs, unary[T](func(a T) T { return a.Abs().Log() }))
	t.Register(opcode.Sqrtabs, unary[T](func(a T) T { return a.Abs().Sqrt() }))
}
