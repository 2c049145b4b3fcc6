package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoExpr is returned by Parse when the text has no valid expression prefix.
	ErrNoExpr = errors.New("expected expression")

	// ErrDivisionByZero is returned when / or % has a zero right operand.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMalformed is returned when a postfix sequence does not reduce to one value.
	ErrMalformed = errors.New("malformed postfix expression")

	// ErrNotConstant is returned by EvalConstant for expressions that reference variables.
	ErrNotConstant = errors.New("expression is not constant")
)

// Kind identifies the kind of an Item.
type Kind uint8

const (
	Num      Kind = iota // integer literal
	Var                  // variable reference a..z
	Operator             // operator, see Item.Op
	Lparen               // ( (infix form only)
	Rparen               // ) (infix form only)
)

// Item is a single element of an infix or postfix expression.
type Item struct {
	Kind Kind
	Val  int64 // value (Num)
	Name byte  // variable letter (Var)
	Op   Op    // operator (Operator)
}

// String returns the source spelling of the item.
func (it Item) String() string {
	switch it.Kind {
	case Num:
		return strconv.FormatInt(it.Val, 10)
	case Var:
		return string(it.Name)
	case Operator:
		return it.Op.String()
	case Lparen:
		return "("
	case Rparen:
		return ")"
	}
	return fmt.Sprintf("item(%d)", it.Kind)
}

// Infix is an expression in source order, parentheses included.
type Infix []Item

// String returns the items separated by spaces.
func (in Infix) String() string {
	parts := make([]string, len(in))
	for i, it := range in {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// IsVarName reports whether c names a variable slot.
func IsVarName(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// Parse scans the longest prefix of text that forms a complete
// expression and returns it together with the number of bytes consumed.
// Trailing text that does not continue the expression is left alone.
func Parse(text string) (Infix, int, error) {
	var (
		out     Infix
		depth   int  // open parentheses
		operand = true
		end     = -1 // offset just past the last complete prefix
		keep    int  // len(out) at end
	)

	i := 0
scan:
	for {
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		if i >= len(text) {
			break
		}
		c := text[i]

		if operand {
			switch {
			case isDigit(c):
				j := i
				for j < len(text) && isDigit(text[j]) {
					j++
				}
				v, err := strconv.ParseInt(text[i:j], 10, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("integer literal %s out of range", text[i:j])
				}
				out = append(out, Item{Kind: Num, Val: v})
				operand = false
				i = j
			case IsVarName(c):
				out = append(out, Item{Kind: Var, Name: c})
				operand = false
				i++
			case c == '(':
				out = append(out, Item{Kind: Lparen})
				depth++
				i++
			case c == '-':
				out = append(out, Item{Kind: Operator, Op: Neg})
				i++
			case c == '!':
				out = append(out, Item{Kind: Operator, Op: Not})
				i++
			default:
				break scan
			}
		} else {
			if c == ')' && depth > 0 {
				out = append(out, Item{Kind: Rparen})
				depth--
				i++
			} else if op, n := scanBinary(text[i:]); n > 0 {
				out = append(out, Item{Kind: Operator, Op: op})
				operand = true
				i += n
			} else {
				break scan
			}
		}

		if !operand && depth == 0 {
			end = i
			keep = len(out)
		}
	}

	if end < 0 {
		return nil, 0, ErrNoExpr
	}
	return out[:keep], end, nil
}

// scanBinary matches a binary operator at the start of s.
func scanBinary(s string) (Op, int) {
	for _, b := range binaryOps {
		if strings.HasPrefix(s, b.lit) {
			return b.op, len(b.lit)
		}
	}
	return 0, 0
}

// Compile parses text and reduces it as far as possible: conversion
// to postfix, constant folding and, for variable-free expressions,
// precomputation to a single literal.
func Compile(text string) (Postfix, int, error) {
	in, n, err := Parse(text)
	if err != nil {
		return nil, 0, err
	}
	p := Fold(ToPostfix(in))
	if IsConstant(p) {
		if v, err := EvalConstant(p); err == nil {
			p = Postfix{{Kind: Num, Val: v}}
		}
	}
	return p, n, nil
}
