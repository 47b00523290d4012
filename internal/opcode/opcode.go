// Package opcode defines the closed enumeration of expression-tree node
// kinds: their arity, commutativity, and leaf/inner classification. A
// Kind's ordinal doubles as its stable index into the dispatch table, so
// registration and lookup are plain array indexing rather than a map.
package opcode

// Kind is a closed enumeration of expression-tree node kinds.
type Kind int

// Supported node kinds, grouped by role: binary/variadic arithmetic,
// unary transcendentals, then leaves.
const (
	Add Kind = iota
	Sub
	Mul
	Div
	Aq
	Fmax
	Fmin
	Pow

	Abs
	Acos
	Asin
	Atan
	Cbrt
	Ceil
	Cos
	Cosh
	Exp
	Floor
	Log
	Logabs
	Log1p
	Sin
	Sinh
	Sqrt
	Sqrtabs
	Tan
	Tanh
	Square

	Dynamic
	Constant
	Variable

	// count is the number of node kinds; kept private, used to size tables.
	count
)

// Count is the number of distinct node kinds.
const Count = int(count)

var names = [count]string{
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Aq: "Aq", Fmax: "Fmax", Fmin: "Fmin", Pow: "Pow",
	Abs: "Abs", Acos: "Acos", Asin: "Asin", Atan: "Atan", Cbrt: "Cbrt", Ceil: "Ceil", Cos: "Cos", Cosh: "Cosh",
	Exp: "Exp", Floor: "Floor", Log: "Log", Logabs: "Logabs", Log1p: "Log1p", Sin: "Sin", Sinh: "Sinh",
	Sqrt: "Sqrt", Sqrtabs: "Sqrtabs", Tan: "Tan", Tanh: "Tanh", Square: "Square",
	Dynamic: "Dynamic", Constant: "Constant", Variable: "Variable",
}

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= Count {
		return "Unknown"
	}
	return names[k]
}

// IsLeaf reports whether nodes of this kind have arity 0.
func (k Kind) IsLeaf() bool {
	return k == Dynamic || k == Constant || k == Variable
}

// IsCommutative reports whether the operator's operands may be folded in
// any order. Only the variadic arithmetic kinds that also admit identity
// elements under reassociation are commutative; Sub and Div are variadic
// but not commutative (their fold order is significant).
func (k Kind) IsCommutative() bool {
	switch k {
	case Add, Mul, Fmax, Fmin:
		return true
	default:
		return false
	}
}

// IsVariadic reports whether the kind's arity may legally exceed its
// minimum (Add, Sub, Mul, Div, Fmax, Fmin all support an n-ary fold; Aq
// and Pow are fixed at arity 2).
func (k Kind) IsVariadic() bool {
	switch k {
	case Add, Sub, Mul, Div, Fmax, Fmin:
		return true
	default:
		return false
	}
}

// MinArity returns the smallest legal arity for the kind. For fixed-arity
// kinds this is also the only legal arity (see FixedArity).
func (k Kind) MinArity() int {
	switch {
	case k.IsVariadic():
		return 1
	case k.IsLeaf():
		return 0
	case k == Aq || k == Pow:
		return 2
	default:
		// unary transcendentals
		return 1
	}
}

// FixedArity returns the kind's required arity and true when the kind does
// not admit a variadic fold (leaves, unary kinds, Aq, and Pow). Dynamic is
// reported as fixed-arity 0 by this method even though a caller that
// registers a custom Dynamic kernel may give it a different declared arity
// — expr.Validate special-cases Dynamic for exactly this reason.
func (k Kind) FixedArity() (int, bool) {
	if k.IsVariadic() {
		return 0, false
	}
	return k.MinArity(), true
}
