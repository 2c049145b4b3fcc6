package expr

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/edwingeng/deque"
)

// Postfix is an expression in operator-after-operands order, directly
// evaluable with a stack machine.
type Postfix []Item

// ToPostfix converts an infix expression with the shunting-yard algorithm.
// The input is assumed to come from Parse and therefore to be well formed.
func ToPostfix(in Infix) Postfix {
	out := make(Postfix, 0, len(in))
	ops := deque.NewDeque()

	for _, it := range in {
		switch it.Kind {
		case Num, Var:
			out = append(out, it)

		case Lparen:
			ops.PushBack(it)

		case Rparen:
			for !ops.Empty() {
				top := ops.PopBack().(Item)
				if top.Kind == Lparen {
					break
				}
				out = append(out, top)
			}

		case Operator:
			for !ops.Empty() {
				top := ops.Back().(Item)
				if top.Kind != Operator {
					break
				}
				// Prefix operators are right associative: nothing already
				// on the stack can be applied before their operand exists.
				if it.Op.IsUnary() || top.Op.Precedence() < it.Op.Precedence() {
					break
				}
				out = append(out, ops.PopBack().(Item))
			}
			ops.PushBack(it)
		}
	}

	for !ops.Empty() {
		if top := ops.PopBack().(Item); top.Kind == Operator {
			out = append(out, top)
		}
	}
	return out
}

// String returns the RPN spelling, e.g. "a 1 +". Negation is written
// "neg" to keep it apart from subtraction.
func (p Postfix) String() string {
	parts := make([]string, len(p))
	for i, it := range p {
		if it.Kind == Operator && it.Op == Neg {
			parts[i] = "neg"
			continue
		}
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// IsConstant reports whether p references no variables.
func IsConstant(p Postfix) bool {
	for _, it := range p {
		if it.Kind == Var {
			return false
		}
	}
	return len(p) > 0
}

// Vars returns the variables referenced by p in order of first use.
func (p Postfix) Vars() []byte {
	var vars []byte
	for _, it := range p {
		if it.Kind == Var && !slices.Contains(vars, it.Name) {
			vars = append(vars, it.Name)
		}
	}
	return vars
}

// Equal reports whether a and b are the same item sequence.
func Equal(a, b Postfix) bool {
	return slices.Equal(a, b)
}

// Format returns infix source text for p using the minimum number of
// parentheses. Compiling the result yields p again when p was produced
// by Compile.
func Format(p Postfix) string {
	type frag struct {
		s    string
		prec int
	}
	const atomPrec = unaryPrec + 1

	var stack []frag
	for _, it := range p {
		switch it.Kind {
		case Num:
			switch {
			case it.Val == math.MinInt64:
				// The magnitude has no int64 literal.
				stack = append(stack, frag{fmt.Sprintf("-%d - 1", int64(math.MaxInt64)), Sub.Precedence()})
			case it.Val < 0:
				stack = append(stack, frag{it.String(), unaryPrec})
			default:
				stack = append(stack, frag{it.String(), atomPrec})
			}
		case Var:
			stack = append(stack, frag{it.String(), atomPrec})
		case Operator:
			if it.Op.IsUnary() {
				if len(stack) < 1 {
					return p.String()
				}
				x := stack[len(stack)-1]
				s := x.s
				if x.prec < unaryPrec {
					s = "(" + s + ")"
				}
				stack[len(stack)-1] = frag{it.Op.String() + s, unaryPrec}
				continue
			}
			if len(stack) < 2 {
				return p.String()
			}
			x, y := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			prec := it.Op.Precedence()
			ls, rs := x.s, y.s
			if x.prec < prec {
				ls = "(" + ls + ")"
			}
			if y.prec <= prec {
				rs = "(" + rs + ")"
			}
			stack = append(stack, frag{ls + " " + it.Op.String() + " " + rs, prec})
		}
	}
	if len(stack) != 1 {
		return p.String()
	}
	return stack[0].s
}
