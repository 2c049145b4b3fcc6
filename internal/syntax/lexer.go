package syntax

import (
	"errors"
	"io"
	"strings"

	"github.com/you-not-fish/blocky/internal/expr"
)

// lexer turns source lines into tokens and derives BlockEnd tokens from
// the indentation of each non-blank line.
type lexer struct {
	source

	toks []Token
	open int // blocks still waiting for their BlockEnd
}

// Lex reads all of src and returns its token sequence. On failure no
// tokens are returned and the error is a *LexError, or the read error.
func Lex(filename string, src io.Reader) ([]Token, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	l := &lexer{source: newSource(filename, buf)}
	for l.nextLine() {
		if err := l.scanLine(); err != nil {
			return nil, err
		}
	}
	l.closeBlocks(l.open, l.eof())
	return l.toks, nil
}

func (l *lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
}

func (l *lexer) errorAt(i int, msg string) error {
	return &LexError{Pos: l.pos(i), Msg: msg}
}

// closeBlocks emits n BlockEnd tokens at pos.
func (l *lexer) closeBlocks(n int, pos Pos) {
	for ; n > 0; n-- {
		l.emit(Token{Kind: KeywordTok, Keyword: BlockEnd, Pos: pos})
		l.open--
	}
}

// dedent closes every open block deeper than the level of a line
// indented by ind spaces. A line starting with else closes one block
// less: the Else token ends the then branch itself, and the else branch
// inherits the if's pending BlockEnd.
func (l *lexer) dedent(ind int, isElse bool) {
	n := l.open - ind/IndentWidth
	if isElse {
		n--
	}
	l.closeBlocks(n, l.pos(ind))
}

// scanLine tokenizes the current line.
func (l *lexer) scanLine() error {
	text := l.text
	if isBlank(text) {
		return nil
	}

	ind := indentation(text)
	first, _ := matchKeyword(text[ind:])
	l.dedent(ind, first == Else)

	awaitExpr := false
	for i := ind; i < len(text); {
		c := text[i]
		if isWhitespace(c) {
			i++
			continue
		}

		if awaitExpr {
			// The expression (or string) ends the statement; anything
			// left on the line is ignored.
			return l.scanOperand(i)
		}

		if k, n := matchKeyword(text[i:]); n > 0 {
			l.emit(Token{Kind: KeywordTok, Keyword: k, Pos: l.pos(i)})
			i += n
			if k.OpensBlock() {
				l.open++
			}
			if k == For {
				next, err := l.scanForHeader(i)
				if err != nil {
					return err
				}
				i = next
				continue
			}
			awaitExpr = k.wantsExpr()
			continue
		}

		if expr.IsVarName(c) {
			l.emit(Token{Kind: VarTok, Var: c, Pos: l.pos(i)})
			i++
			continue
		}

		// Stray characters are skipped.
		i++
	}

	if awaitExpr {
		return l.errorAt(len(text), "expected expression")
	}
	return nil
}

// scanOperand scans the expression or string literal starting at byte i
// of the current line.
func (l *lexer) scanOperand(i int) error {
	text := l.text
	if text[i] == '"' {
		// Strings end at the closing quote or the end of the line.
		s := text[i+1:]
		if n := strings.IndexByte(s, '"'); n >= 0 {
			s = s[:n]
		}
		l.emit(Token{Kind: StringTok, Str: s, Pos: l.pos(i)})
		return nil
	}

	p, err := l.compile(text[i:], i)
	if err != nil {
		return err
	}
	l.emit(Token{Kind: ExprTok, Expr: p, Pos: l.pos(i)})
	return nil
}

// compile reduces an expression found at byte offs of the current line.
func (l *lexer) compile(text string, offs int) (expr.Postfix, error) {
	p, _, err := expr.Compile(text)
	if err != nil {
		if errors.Is(err, expr.ErrNoExpr) {
			return nil, l.errorAt(offs, "expected expression")
		}
		return nil, l.errorAt(offs, err.Error())
	}
	return p, nil
}

// scanForHeader scans "(init; cond; step)" starting at byte i of the
// current line, just past the for keyword. It emits the loop variable,
// the optional "= expr" initializer, the condition and the step, and
// returns the offset just past the closing parenthesis.
func (l *lexer) scanForHeader(i int) (int, error) {
	text := l.text
	for i < len(text) && isWhitespace(text[i]) {
		i++
	}
	if i >= len(text) || text[i] != '(' {
		return 0, l.errorAt(i, "expected '(' after for")
	}
	i++

	initStart := i
	initText, i, err := l.clause(i, ';', "expected ';' in for header")
	if err != nil {
		return 0, err
	}
	condStart := i
	cond, i, err := l.clause(i, ';', "expected ';' in for header")
	if err != nil {
		return 0, err
	}
	stepStart := i
	step, i, err := l.clause(i, ')', "expected ')' after for header")
	if err != nil {
		return 0, err
	}

	// Initializer: "v" or "v = expr".
	v, rhs, ok := splitAssign(initText)
	vpos := initStart + leading(initText)
	if v == 0 {
		return 0, l.errorAt(vpos, "expected loop variable in for header")
	}
	l.emit(Token{Kind: VarTok, Var: v, Pos: l.pos(vpos)})
	if ok {
		eq := initStart + strings.IndexByte(initText, '=')
		l.emit(Token{Kind: KeywordTok, Keyword: Assign, Pos: l.pos(eq)})
		if err := l.clauseExpr(rhs, eq+1); err != nil {
			return 0, err
		}
	} else if !isBlank(initText[leading(initText)+1:]) {
		return 0, l.errorAt(vpos+1, "expected '=' or ';' in for header")
	}

	if err := l.clauseExpr(cond, condStart); err != nil {
		return 0, err
	}

	// Step: "expr" or "v = expr" with v the loop variable.
	if sv, srhs, ok := splitAssign(step); ok {
		if sv != v {
			return 0, l.errorAt(stepStart+leading(step), "for step must assign the loop variable")
		}
		return i, l.clauseExpr(srhs, stepStart+strings.IndexByte(step, '=')+1)
	}
	return i, l.clauseExpr(step, stepStart)
}

// clause returns the text from byte i of the current line up to the
// first term character outside parentheses, and the offset past it.
func (l *lexer) clause(i int, term byte, msg string) (string, int, error) {
	text := l.text
	depth := 0
	for j := i; j < len(text); j++ {
		switch c := text[j]; {
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth == 0 && (c == ';' || c == ')'):
			if c != term {
				return "", 0, l.errorAt(j, msg)
			}
			return text[i:j], j + 1, nil
		}
	}
	return "", 0, l.errorAt(len(text), msg)
}

// clauseExpr compiles a for clause starting at byte offs and emits it.
func (l *lexer) clauseExpr(text string, offs int) error {
	start := offs + leading(text)
	if isBlank(text) {
		return l.errorAt(start, "expected expression")
	}
	p, err := l.compile(text, start)
	if err != nil {
		return err
	}
	l.emit(Token{Kind: ExprTok, Expr: p, Pos: l.pos(start)})
	return nil
}

// splitAssign splits "v = rhs". It returns the leading variable (0 when
// the text does not start with one), the right-hand side and whether an
// assignment operator followed the variable.
func splitAssign(text string) (byte, string, bool) {
	i := leading(text)
	if i >= len(text) || !expr.IsVarName(text[i]) {
		return 0, "", false
	}
	v := text[i]
	j := i + 1
	for j < len(text) && isWhitespace(text[j]) {
		j++
	}
	if j < len(text) && text[j] == '=' && (j+1 >= len(text) || text[j+1] != '=') {
		return v, text[j+1:], true
	}
	return v, "", false
}

// leading returns the number of whitespace bytes at the start of text.
func leading(text string) int {
	n := 0
	for n < len(text) && isWhitespace(text[n]) {
		n++
	}
	return n
}
