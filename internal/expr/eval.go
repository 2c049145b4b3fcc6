package expr

// Env supplies variable values during evaluation.
type Env interface {
	Lookup(name byte) int64
}

// Eval evaluates p against env.
func Eval(p Postfix, env Env) (int64, error) {
	stack := make([]int64, 0, len(p))
	for _, it := range p {
		switch it.Kind {
		case Num:
			stack = append(stack, it.Val)

		case Var:
			stack = append(stack, env.Lookup(it.Name))

		case Operator:
			if it.Op.IsUnary() {
				if len(stack) < 1 {
					return 0, ErrMalformed
				}
				stack[len(stack)-1] = unary(it.Op, stack[len(stack)-1])
				continue
			}
			if len(stack) < 2 {
				return 0, ErrMalformed
			}
			x, y := stack[len(stack)-2], stack[len(stack)-1]
			v, err := binary(it.Op, x, y)
			if err != nil {
				return 0, err
			}
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = v

		default:
			return 0, ErrMalformed
		}
	}
	if len(stack) != 1 {
		return 0, ErrMalformed
	}
	return stack[0], nil
}

// EvalConstant evaluates a variable-free expression.
func EvalConstant(p Postfix) (int64, error) {
	if !IsConstant(p) {
		return 0, ErrNotConstant
	}
	return Eval(p, nil)
}

// EvalString resolves a string literal payload. Strings carry no
// interpolation, so this is the identity.
func EvalString(s string) string {
	return s
}

func unary(op Op, x int64) int64 {
	switch op {
	case Neg:
		return -x
	case Not:
		return bool2int(x == 0)
	}
	panic("expr: not a unary operator: " + op.String())
}

func binary(op Op, x, y int64) (int64, error) {
	switch op {
	case OrOr:
		return bool2int(x != 0 || y != 0), nil
	case AndAnd:
		return bool2int(x != 0 && y != 0), nil
	case Eql:
		return bool2int(x == y), nil
	case Neq:
		return bool2int(x != y), nil
	case Lss:
		return bool2int(x < y), nil
	case Leq:
		return bool2int(x <= y), nil
	case Gtr:
		return bool2int(x > y), nil
	case Geq:
		return bool2int(x >= y), nil
	case Add:
		return x + y, nil
	case Sub:
		return x - y, nil
	case Mul:
		return x * y, nil
	case Div:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	case Rem:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x % y, nil
	}
	panic("expr: not a binary operator: " + op.String())
}

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
