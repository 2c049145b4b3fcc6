// Package syntax implements lexical and syntactic analysis for Blocky,
// an indentation-structured language over 26 integer variables.
package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/you-not-fish/blocky/internal/expr"
)

// IndentWidth is the number of spaces per block level.
const IndentWidth = 4

// Keyword identifies a keyword token.
type Keyword uint8

const (
	Assign   Keyword = iota // =
	If                      // if
	Else                    // else
	While                   // while
	For                     // for
	Return                  // return
	Print                   // print
	BlockEnd                // synthetic end of an indented block

	keywordCount
)

var keywordNames = [...]string{
	Assign:   "=",
	If:       "if",
	Else:     "else",
	While:    "while",
	For:      "for",
	Return:   "return",
	Print:    "print",
	BlockEnd: "(end-block)",
}

// String returns the keyword spelling. BlockEnd never appears in source
// text and is shown as "(end-block)".
func (k Keyword) String() string {
	if k < keywordCount {
		return keywordNames[k]
	}
	return fmt.Sprintf("keyword(%d)", k)
}

// OpensBlock reports whether k introduces an indented block that is
// closed by a BlockEnd token.
func (k Keyword) OpensBlock() bool {
	switch k {
	case If, While, For:
		return true
	}
	return false
}

// wantsExpr reports whether the rest of the line after k is an
// expression or string literal.
func (k Keyword) wantsExpr() bool {
	switch k {
	case Assign, If, While, Return, Print:
		return true
	}
	return false
}

// lexemes lists the source keywords in match priority order.
var lexemes = [...]Keyword{Assign, If, Else, While, Return, Print, For}

// matchKeyword reports the keyword spelled at the start of s, if any.
// Keywords match as plain prefixes: variables are single letters, so no
// identifier can contain a keyword.
func matchKeyword(s string) (Keyword, int) {
	for _, k := range lexemes {
		if name := keywordNames[k]; strings.HasPrefix(s, name) {
			return k, len(name)
		}
	}
	return 0, 0
}

// Kind is the discriminant of a Token.
type Kind uint8

const (
	KeywordTok Kind = iota // Token.Keyword
	VarTok                 // Token.Var
	ExprTok                // Token.Expr
	StringTok              // Token.Str
)

var kindNames = [...]string{
	KeywordTok: "KEYWORD",
	VarTok:     "VAR",
	ExprTok:    "EXPR",
	StringTok:  "STRING",
}

// String returns an upper-case name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Token is one lexical token. Only the payload field selected by Kind
// is meaningful.
type Token struct {
	Kind    Kind
	Keyword Keyword      // KeywordTok
	Var     byte         // VarTok: 'a'..'z'
	Expr    expr.Postfix // ExprTok: folded postfix form
	Str     string       // StringTok: literal content without quotes
	Pos     Pos          // start of the token
}

// Is reports whether t is the keyword k.
func (t Token) Is(k Keyword) bool {
	return t.Kind == KeywordTok && t.Keyword == k
}

// Literal returns the token payload as text: the keyword spelling, the
// variable letter, the postfix expression, or the quoted string.
func (t Token) Literal() string {
	switch t.Kind {
	case KeywordTok:
		return t.Keyword.String()
	case VarTok:
		return string(t.Var)
	case ExprTok:
		return t.Expr.String()
	case StringTok:
		return strconv.Quote(t.Str)
	}
	return ""
}

// String describes the token for diagnostics, e.g. "if" or "VAR a".
func (t Token) String() string {
	if t.Kind == KeywordTok {
		return t.Keyword.String()
	}
	return t.Kind.String() + " " + t.Literal()
}
