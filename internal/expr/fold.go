package expr

// Fold replaces every operator whose operands are all constant by the
// computed literal. Operations that fail (division by zero) stay in
// place, and so does everything above them, so the error is reported
// when the expression is evaluated. A malformed p is returned unchanged.
func Fold(p Postfix) Postfix {
	type operand struct {
		items Postfix
		konst bool // items is a single folded literal
	}

	var stack []operand
	for _, it := range p {
		switch it.Kind {
		case Num:
			stack = append(stack, operand{Postfix{it}, true})

		case Var:
			stack = append(stack, operand{Postfix{it}, false})

		case Operator:
			n := 2
			if it.Op.IsUnary() {
				n = 1
			}
			if len(stack) < n {
				return p
			}
			args := stack[len(stack)-n:]

			var (
				items Postfix
				konst = true
			)
			for _, a := range args {
				items = append(items, a.items...)
				konst = konst && a.konst
			}
			items = append(items, it)

			if konst {
				var (
					v   int64
					err error
				)
				if n == 1 {
					v = unary(it.Op, args[0].items[0].Val)
				} else {
					v, err = binary(it.Op, args[0].items[0].Val, args[1].items[0].Val)
				}
				if err == nil {
					items = Postfix{{Kind: Num, Val: v}}
				} else {
					konst = false
				}
			}

			stack = append(stack[:len(stack)-n], operand{items, konst})

		default:
			return p
		}
	}

	if len(stack) != 1 {
		return p
	}
	return stack[0].items
}
