package numeric

import "math"

// Dual is a forward-mode automatic-differentiation scalar: a real part
// plus a vector of D derivative lanes. D is chosen at the call site
// (typically 4 or 8, matching the number of parameters swept in one
// pass) and is fixed for the lifetime of one derivative sweep; every
// Dual value participating in a single Evaluate call must carry the same
// Deriv length.
type Dual struct {
	Real  float64
	Deriv []float64
}

// NewDual builds a zero-derivative dual with D lanes, the factory the
// interpreter uses to lift plain constants and dataset values into the
// dual working buffer.
func NewDual(dim int) Dual {
	return Dual{Deriv: make([]float64, dim)}
}

// SeedDual builds a dual whose real part is v and whose lane-th derivative
// is 1, the rest zero — the unit seed forward.Jacobian plants for each
// parameter in the current sweep chunk.
func SeedDual(v float64, dim, lane int) Dual {
	d := NewDual(dim)
	d.Real = v
	d.Deriv[lane] = 1
	return d
}

func (d Dual) elementwise(o Dual, real float64, f func(a, b float64) float64) Dual {
	res := Dual{Real: real, Deriv: make([]float64, len(d.Deriv))}
	for i := range res.Deriv {
		res.Deriv[i] = f(d.Deriv[i], o.Deriv[i])
	}
	return res
}

func (d Dual) Add(o Dual) Dual {
	return d.elementwise(o, d.Real+o.Real, func(a, b float64) float64 { return a + b })
}

func (d Dual) Sub(o Dual) Dual {
	return d.elementwise(o, d.Real-o.Real, func(a, b float64) float64 { return a - b })
}

func (d Dual) Mul(o Dual) Dual {
	return d.elementwise(o, d.Real*o.Real, func(a, b float64) float64 {
		return a*o.Real + d.Real*b
	})
}

func (d Dual) Div(o Dual) Dual {
	real := d.Real / o.Real
	denom := o.Real * o.Real
	return d.elementwise(o, real, func(a, b float64) float64 {
		return (a*o.Real - d.Real*b) / denom
	})
}

func (d Dual) Neg() Dual {
	res := Dual{Real: -d.Real, Deriv: make([]float64, len(d.Deriv))}
	for i, v := range d.Deriv {
		res.Deriv[i] = -v
	}
	return res
}

// Recip is 1/x, d(1/x) = -1/x^2 * dx.
func (d Dual) Recip() Dual {
	return d.unary(func(x float64) float64 { return 1 / x }, func(x float64) float64 { return -1 / (x * x) })
}

// unary lifts a scalar function f with derivative g(x) = f'(x) via the
// chain rule: d(f(u))/dt = f'(u) * du/dt.
func (d Dual) unary(f, g func(float64) float64) Dual {
	res := Dual{Real: f(d.Real), Deriv: make([]float64, len(d.Deriv))}
	coeff := g(d.Real)
	for i, v := range d.Deriv {
		res.Deriv[i] = coeff * v
	}
	return res
}

func (d Dual) Abs() Dual {
	return d.unary(math.Abs, func(x float64) float64 {
		if x < 0 {
			return -1
		}
		return 1
	})
}

func (d Dual) Acos() Dual {
	return d.unary(math.Acos, func(x float64) float64 { return -1 / math.Sqrt(1-x*x) })
}

func (d Dual) Asin() Dual {
	return d.unary(math.Asin, func(x float64) float64 { return 1 / math.Sqrt(1-x*x) })
}

func (d Dual) Atan() Dual {
	return d.unary(math.Atan, func(x float64) float64 { return 1 / (1 + x*x) })
}

func (d Dual) Cbrt() Dual {
	return d.unary(math.Cbrt, func(x float64) float64 {
		c := math.Cbrt(x)
		return 1 / (3 * c * c)
	})
}

func (d Dual) Ceil() Dual {
	return d.unary(math.Ceil, func(float64) float64 { return 0 })
}

func (d Dual) Cos() Dual {
	return d.unary(math.Cos, func(x float64) float64 { return -math.Sin(x) })
}

func (d Dual) Cosh() Dual {
	return d.unary(math.Cosh, math.Sinh)
}

func (d Dual) Exp() Dual {
	return d.unary(math.Exp, math.Exp)
}

func (d Dual) Floor() Dual {
	return d.unary(math.Floor, func(float64) float64 { return 0 })
}

func (d Dual) Log() Dual {
	return d.unary(math.Log, func(x float64) float64 { return 1 / x })
}

func (d Dual) Log1p() Dual {
	return d.unary(math.Log1p, func(x float64) float64 { return 1 / (1 + x) })
}

func (d Dual) Sin() Dual {
	return d.unary(math.Sin, math.Cos)
}

func (d Dual) Sinh() Dual {
	return d.unary(math.Sinh, math.Cosh)
}

func (d Dual) Sqrt() Dual {
	return d.unary(math.Sqrt, func(x float64) float64 { return 1 / (2 * math.Sqrt(x)) })
}

func (d Dual) Tan() Dual {
	return d.unary(math.Tan, func(x float64) float64 {
		c := math.Cos(x)
		return 1 / (c * c)
	})
}

func (d Dual) Tanh() Dual {
	return d.unary(math.Tanh, func(x float64) float64 {
		t := math.Tanh(x)
		return 1 - t*t
	})
}

func (d Dual) Square() Dual {
	return d.unary(func(x float64) float64 { return x * x }, func(x float64) float64 { return 2 * x })
}

// Pow implements a^b with the general two-argument derivative so gradients
// flow correctly whether the exponent is itself a tracked parameter:
//
//	d(a^b) = b*a^(b-1)*da + a^b*ln(a)*db
func (d Dual) Pow(o Dual) Dual {
	real := math.Pow(d.Real, o.Real)
	dReal := o.Real * math.Pow(d.Real, o.Real-1)
	dExp := real * math.Log(d.Real)
	return d.elementwise(o, real, func(a, b float64) float64 {
		return dReal*a + dExp*b
	})
}

func (d Dual) Fmax(o Dual) Dual {
	if d.Real >= o.Real {
		return d
	}
	return o
}

func (d Dual) Fmin(o Dual) Dual {
	if d.Real <= o.Real {
		return d
	}
	return o
}

// Aq is the analytic quotient a / sqrt(1 + b^2).
func (d Dual) Aq(o Dual) Dual {
	s := math.Sqrt(1 + o.Real*o.Real)
	real := d.Real / s
	return d.elementwise(o, real, func(a, b float64) float64 {
		return a/s - d.Real*o.Real*b/(s*s*s)
	})
}
