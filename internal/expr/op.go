// Package expr implements the integer expression engine: infix parsing,
// conversion to postfix form, constant folding and evaluation.
package expr

import "fmt"

// Op is an arithmetic, comparison or logical operator.
type Op uint8

const (
	_ Op = iota

	// Logical operators
	OrOr   // ||
	AndAnd // &&

	// Equality
	Eql // ==
	Neq // !=

	// Relational
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Additive
	Add // +
	Sub // -

	// Multiplicative
	Mul // *
	Div // /
	Rem // %

	// Unary
	Neg // - (negation)
	Not // !

	opCount
)

var opNames = [...]string{
	OrOr:   "||",
	AndAnd: "&&",
	Eql:    "==",
	Neq:    "!=",
	Lss:    "<",
	Leq:    "<=",
	Gtr:    ">",
	Geq:    ">=",
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Rem:    "%",
	Neg:    "-",
	Not:    "!",
}

// String returns the source spelling of the operator.
func (op Op) String() string {
	if op > 0 && op < opCount {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", op)
}

// unaryPrec is the precedence of the prefix operators; it binds tighter
// than any binary operator.
const unaryPrec = 7

// Precedence returns the binding power of op (higher binds tighter).
//
//	1: ||
//	2: &&
//	3: == !=
//	4: < <= > >=
//	5: + -
//	6: * / %
//	7: unary - !
func (op Op) Precedence() int {
	switch op {
	case OrOr:
		return 1
	case AndAnd:
		return 2
	case Eql, Neq:
		return 3
	case Lss, Leq, Gtr, Geq:
		return 4
	case Add, Sub:
		return 5
	case Mul, Div, Rem:
		return 6
	case Neg, Not:
		return unaryPrec
	}
	return 0
}

// IsUnary reports whether op takes a single operand.
func (op Op) IsUnary() bool {
	return op == Neg || op == Not
}

// binaryOps lists the binary operator spellings, longest first so that
// "<=" wins over "<".
var binaryOps = []struct {
	lit string
	op  Op
}{
	{"||", OrOr},
	{"&&", AndAnd},
	{"==", Eql},
	{"!=", Neq},
	{"<=", Leq},
	{">=", Geq},
	{"<", Lss},
	{">", Gtr},
	{"+", Add},
	{"-", Sub},
	{"*", Mul},
	{"/", Div},
	{"%", Rem},
}
