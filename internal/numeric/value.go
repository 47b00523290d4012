// Package numeric defines the scalar abstraction the interpreter and its
// kernels are generic over. Two concrete types implement Value: Real (the
// primal scalar) and Dual (a forward-mode automatic-differentiation dual
// number). Writing the interpreter and kernels once against Value[T] and
// instantiating them for both types is the Go analogue of the source
// engine's GenericInterpreter<Ts...> template over a scalar type pack.
package numeric

// Value is the arithmetic interface a scalar type must implement to be
// evaluated by the interpreter. A kernel written against Value[T] is
// oblivious to whether T is a plain real number or a dual number carrying
// derivative lanes — the same kernel code serves both the primal and the
// forward-mode derivative path, exactly as the dispatch table is meant
// to.
type Value[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Recip() T

	Abs() T
	Acos() T
	Asin() T
	Atan() T
	Cbrt() T
	Ceil() T
	Cos() T
	Cosh() T
	Exp() T
	Floor() T
	Log() T
	Log1p() T
	Sin() T
	Sinh() T
	Sqrt() T
	Tan() T
	Tanh() T
	Square() T

	Pow(T) T
	Fmax(T) T
	Fmin(T) T
	Aq(T) T
}
