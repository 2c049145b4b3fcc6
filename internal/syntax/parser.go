package syntax

import (
	"fmt"
	"io"

	"github.com/you-not-fish/blocky/internal/expr"
)

// terminator tells a block's caller which token ended it.
type terminator uint8

const (
	endOfInput terminator = iota // token sequence exhausted
	endBlock                     // BlockEnd
	endElse                      // Else
)

// parser builds a statement tree from a token sequence.
type parser struct {
	toks []Token
	i    int // index of the current token
}

// Parse builds the program's top-level block from toks. The first
// structural mismatch stops parsing and is returned as a *ParseError.
func Parse(toks []Token) (*Block, error) {
	p := &parser{toks: toks}

	b, term, err := p.block()
	if err != nil {
		return nil, err
	}
	switch term {
	case endBlock:
		return nil, p.errorAt(p.prev(), "unexpected end of block")
	case endElse:
		return nil, p.errorAt(p.prev(), "else without if")
	}
	return b, nil
}

// ParseSource lexes and parses src.
func ParseSource(filename string, src io.Reader) (*Block, error) {
	toks, err := Lex(filename, src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *parser) atEOF() bool {
	return p.i >= len(p.toks)
}

// tok returns the current token. It must not be called at EOF.
func (p *parser) tok() Token {
	return p.toks[p.i]
}

func (p *parser) next() {
	p.i++
}

// prev returns the position of the last consumed token.
func (p *parser) prev() Pos {
	if p.i == 0 || len(p.toks) == 0 {
		return Pos{}
	}
	return p.toks[p.i-1].Pos
}

// pos returns the position of the current token, or of the last token
// at EOF.
func (p *parser) pos() Pos {
	if p.atEOF() {
		if n := len(p.toks); n > 0 {
			return p.toks[n-1].Pos
		}
		return Pos{}
	}
	return p.tok().Pos
}

func (p *parser) errorAt(pos Pos, msg string) error {
	return &ParseError{Pos: pos, Msg: msg}
}

// found describes the current token for error messages.
func (p *parser) found() string {
	if p.atEOF() {
		return "end of input"
	}
	return p.tok().String()
}

// wantExpr consumes an expression token.
func (p *parser) wantExpr(context string) (expr.Postfix, error) {
	if p.atEOF() || p.tok().Kind != ExprTok {
		return nil, p.errorAt(p.pos(), fmt.Sprintf("expected expression %s, found %s", context, p.found()))
	}
	x := p.tok().Expr
	p.next()
	return x, nil
}

// wantKeyword consumes the keyword k.
func (p *parser) wantKeyword(k Keyword) error {
	if p.atEOF() || !p.tok().Is(k) {
		return p.errorAt(p.pos(), fmt.Sprintf("expected %s, found %s", k, p.found()))
	}
	p.next()
	return nil
}

// ----------------------------------------------------------------------------
// Blocks

// block parses statements up to and including the next BlockEnd or Else,
// or up to the end of input.
func (p *parser) block() (*Block, terminator, error) {
	b := &Block{}
	b.pos = p.pos()

	for !p.atEOF() {
		tok := p.tok()
		switch {
		case tok.Is(BlockEnd):
			p.next()
			return b, endBlock, nil
		case tok.Is(Else):
			p.next()
			return b, endElse, nil
		}

		s, err := p.stmt()
		if err != nil {
			return nil, 0, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	return b, endOfInput, nil
}

// body parses a block that must be closed by BlockEnd.
func (p *parser) body() (*Block, error) {
	b, term, err := p.block()
	if err != nil {
		return nil, err
	}
	switch term {
	case endElse:
		return nil, p.errorAt(p.prev(), "else without if")
	case endOfInput:
		return nil, p.errorAt(p.pos(), "unexpected end of input, expected end of block")
	}
	return b, nil
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses one statement starting at the current token.
func (p *parser) stmt() (Stmt, error) {
	tok := p.tok()
	switch tok.Kind {
	case VarTok:
		return p.assignStmt()

	case KeywordTok:
		switch tok.Keyword {
		case Print:
			return p.printStmt()
		case Return:
			return p.returnStmt()
		case If:
			return p.ifStmt()
		case While:
			return p.whileStmt()
		case For:
			return p.forStmt()
		case Assign:
			return nil, p.errorAt(tok.Pos, "unexpected =, expected statement")
		case BlockEnd, Else:
			panic("syntax: block terminator reached stmt")
		default:
			panic(fmt.Sprintf("syntax: unknown keyword %d", tok.Keyword))
		}

	case ExprTok, StringTok:
		return nil, p.errorAt(tok.Pos, "unexpected "+tok.String()+", expected statement")
	}
	panic(fmt.Sprintf("syntax: unknown token kind %d", tok.Kind))
}

// assignStmt parses: v = expr
func (p *parser) assignStmt() (*AssignStmt, error) {
	s := &AssignStmt{Var: p.tok().Var}
	s.pos = p.pos()
	p.next()

	if err := p.wantKeyword(Assign); err != nil {
		return nil, err
	}
	x, err := p.wantExpr("after =")
	if err != nil {
		return nil, err
	}
	s.X = x
	return s, nil
}

// printStmt parses: print expr | print "string"
func (p *parser) printStmt() (*PrintStmt, error) {
	s := &PrintStmt{}
	s.pos = p.pos()
	p.next()

	if !p.atEOF() && p.tok().Kind == StringTok {
		s.Kind = PrintString
		s.Str = p.tok().Str
		p.next()
		return s, nil
	}
	x, err := p.wantExpr("or string after print")
	if err != nil {
		return nil, err
	}
	s.Kind = PrintExpr
	s.X = x
	return s, nil
}

// returnStmt parses: return expr
func (p *parser) returnStmt() (*ReturnStmt, error) {
	s := &ReturnStmt{}
	s.pos = p.pos()
	p.next()

	x, err := p.wantExpr("after return")
	if err != nil {
		return nil, err
	}
	s.X = x
	return s, nil
}

// ifStmt parses: if cond then [else else] end
func (p *parser) ifStmt() (*IfStmt, error) {
	s := &IfStmt{}
	s.pos = p.pos()
	p.next()

	cond, err := p.wantExpr("after if")
	if err != nil {
		return nil, err
	}
	s.Cond = cond

	then, term, err := p.block()
	if err != nil {
		return nil, err
	}
	s.Then = then

	switch term {
	case endOfInput:
		return nil, p.errorAt(p.pos(), "unexpected end of input, expected end of block")
	case endElse:
		if s.Else, err = p.body(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// whileStmt parses: while cond body
func (p *parser) whileStmt() (*WhileStmt, error) {
	s := &WhileStmt{}
	s.pos = p.pos()
	p.next()

	cond, err := p.wantExpr("after while")
	if err != nil {
		return nil, err
	}
	s.Cond = cond

	if s.Body, err = p.body(); err != nil {
		return nil, err
	}
	return s, nil
}

// forStmt parses: for v [= init] cond step body
func (p *parser) forStmt() (*ForStmt, error) {
	s := &ForStmt{}
	s.pos = p.pos()
	p.next()

	if p.atEOF() || p.tok().Kind != VarTok {
		return nil, p.errorAt(p.pos(), "expected loop variable after for, found "+p.found())
	}
	s.Var = p.tok().Var
	if p.i+1 < len(p.toks) && p.toks[p.i+1].Is(Assign) {
		init, err := p.assignStmt()
		if err != nil {
			return nil, err
		}
		s.Init = init
	} else {
		p.next()
	}

	var err error
	if s.Cond, err = p.wantExpr("for loop condition"); err != nil {
		return nil, err
	}
	if s.Step, err = p.wantExpr("for loop step"); err != nil {
		return nil, err
	}
	if s.Body, err = p.body(); err != nil {
		return nil, err
	}
	return s, nil
}
