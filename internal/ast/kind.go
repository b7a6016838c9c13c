package ast

import "fmt"

// Kind tags every node of an equation tree.
type Kind int

const (
	Assignment Kind = iota

	// Relational and logical operators.
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
	And
	Or
	Xor
	Not

	// Arithmetic operators.
	Plus
	Minus
	Times
	Divide
	Power
	Root
	Abs
	Exp
	Ln
	Log
	Ceiling
	Floor
	Min
	Max
	Rem

	// Calculus.
	Diff

	// Trigonometric family.
	Sin
	Cos
	Tan
	Sec
	Csc
	Cot
	Sinh
	Cosh
	Tanh
	Sech
	Csch
	Coth
	Asin
	Acos
	Atan
	Asec
	Acsc
	Acot
	Asinh
	Acosh
	Atanh
	Asech
	Acsch
	Acoth

	// Piecewise statements.
	Piecewise
	Piece
	Otherwise

	// Tokens.
	Ci
	Cn

	// Qualifiers.
	Degree
	Logbase
	Bvar

	// Named constants.
	True
	False
	E
	Pi
	Inf
	NaN
)

var kindNames = [...]string{
	Assignment: "assignment",
	Eq:         "eq",
	Neq:        "neq",
	Lt:         "lt",
	Leq:        "leq",
	Gt:         "gt",
	Geq:        "geq",
	And:        "and",
	Or:         "or",
	Xor:        "xor",
	Not:        "not",
	Plus:       "plus",
	Minus:      "minus",
	Times:      "times",
	Divide:     "divide",
	Power:      "power",
	Root:       "root",
	Abs:        "abs",
	Exp:        "exp",
	Ln:         "ln",
	Log:        "log",
	Ceiling:    "ceiling",
	Floor:      "floor",
	Min:        "min",
	Max:        "max",
	Rem:        "rem",
	Diff:       "diff",
	Sin:        "sin",
	Cos:        "cos",
	Tan:        "tan",
	Sec:        "sec",
	Csc:        "csc",
	Cot:        "cot",
	Sinh:       "sinh",
	Cosh:       "cosh",
	Tanh:       "tanh",
	Sech:       "sech",
	Csch:       "csch",
	Coth:       "coth",
	Asin:       "asin",
	Acos:       "acos",
	Atan:       "atan",
	Asec:       "asec",
	Acsc:       "acsc",
	Acot:       "acot",
	Asinh:      "asinh",
	Acosh:      "acosh",
	Atanh:      "atanh",
	Asech:      "asech",
	Acsch:      "acsch",
	Acoth:      "acoth",
	Piecewise:  "piecewise",
	Piece:      "piece",
	Otherwise:  "otherwise",
	Ci:         "ci",
	Cn:         "cn",
	Degree:     "degree",
	Logbase:    "logbase",
	Bvar:       "bvar",
	True:       "true",
	False:      "false",
	E:          "e",
	Pi:         "pi",
	Inf:        "inf",
	NaN:        "nan",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsTrigonometric reports whether k belongs to the trigonometric family.
func (k Kind) IsTrigonometric() bool {
	return k >= Sin && k <= Acoth
}

// IsRelational reports whether k is one of the comparison operators.
func (k Kind) IsRelational() bool {
	return k >= Eq && k <= Geq
}

// IsQualifier reports whether k is degree, logbase or bvar.
func (k Kind) IsQualifier() bool {
	return k == Degree || k == Logbase || k == Bvar
}

// IsNamedConstant reports whether k is true, false, e, pi, inf or nan.
func (k Kind) IsNamedConstant() bool {
	return k >= True && k <= NaN
}

// isUnaryKind reports whether a Unary node may carry k. Minus and Plus are
// the sign operators, Root is the square root and Log is the base 10
// logarithm.
func isUnaryKind(k Kind) bool {
	switch k {
	case Not, Plus, Minus, Root, Abs, Exp, Ln, Log, Ceiling, Floor,
		Degree, Logbase, Bvar, Otherwise:
		return true
	}
	return k.IsTrigonometric()
}

// isBinaryKind reports whether a Binary node may carry k. Root and Log take a
// Degree or Logbase qualifier as their left operand; Diff takes a Bvar.
func isBinaryKind(k Kind) bool {
	switch k {
	case Assignment, Eq, Neq, Lt, Leq, Gt, Geq, And, Or, Xor,
		Plus, Minus, Times, Divide, Power, Root, Log, Min, Max, Rem,
		Diff, Piece:
		return true
	}
	return false
}
