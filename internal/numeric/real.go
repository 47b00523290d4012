package numeric

import "math"

// Real is the primal scalar type: a plain double-precision float dressed
// up with the Value method set so kernels can be written generically.
// Precision is a property of T at the call site, not of this package:
// this implementation carries float64 throughout, but nothing in the
// interpreter or kernels assumes that width, so a float32-backed Value
// implementation could stand in for it without touching either.
type Real float64

// NewReal constructs a Real scalar from a plain float64, used as the
// newScalar factory the interpreter needs when broadcasting constants and
// dataset values into the primal working buffer.
func NewReal(v float64) Real { return Real(v) }

func (r Real) Add(o Real) Real { return r + o }
func (r Real) Sub(o Real) Real { return r - o }
func (r Real) Mul(o Real) Real { return r * o }
func (r Real) Div(o Real) Real { return r / o }
func (r Real) Neg() Real       { return -r }
func (r Real) Recip() Real     { return 1 / r }

func (r Real) Abs() Real   { return Real(math.Abs(float64(r))) }
func (r Real) Acos() Real  { return Real(math.Acos(float64(r))) }
func (r Real) Asin() Real  { return Real(math.Asin(float64(r))) }
func (r Real) Atan() Real  { return Real(math.Atan(float64(r))) }
func (r Real) Cbrt() Real  { return Real(math.Cbrt(float64(r))) }
func (r Real) Ceil() Real  { return Real(math.Ceil(float64(r))) }
func (r Real) Cos() Real   { return Real(math.Cos(float64(r))) }
func (r Real) Cosh() Real  { return Real(math.Cosh(float64(r))) }
func (r Real) Exp() Real   { return Real(math.Exp(float64(r))) }
func (r Real) Floor() Real { return Real(math.Floor(float64(r))) }
func (r Real) Log() Real   { return Real(math.Log(float64(r))) }
func (r Real) Log1p() Real { return Real(math.Log1p(float64(r))) }
func (r Real) Sin() Real   { return Real(math.Sin(float64(r))) }
func (r Real) Sinh() Real  { return Real(math.Sinh(float64(r))) }
func (r Real) Sqrt() Real  { return Real(math.Sqrt(float64(r))) }
func (r Real) Tan() Real   { return Real(math.Tan(float64(r))) }
func (r Real) Tanh() Real  { return Real(math.Tanh(float64(r))) }
func (r Real) Square() Real {
	return r * r
}

func (r Real) Pow(o Real) Real  { return Real(math.Pow(float64(r), float64(o))) }
func (r Real) Fmax(o Real) Real { return Real(math.Max(float64(r), float64(o))) }
func (r Real) Fmin(o Real) Real { return Real(math.Min(float64(r), float64(o))) }

// Aq is the analytic quotient a / sqrt(1 + b^2), a div-like operator with
// no pole at b == 0 (GLOSSARY: Aq).
func (r Real) Aq(o Real) Real {
	return Real(float64(r) / math.Sqrt(1+float64(o)*float64(o)))
}
