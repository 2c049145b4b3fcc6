package syntax

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/blocky/internal/expr"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseProgram(t *testing.T, src string) *Block {
	t.Helper()
	b, err := ParseSource("", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", src, err)
	}
	return b
}

// summary renders a tree compactly without positions.
func summary(node Node) string {
	switch n := node.(type) {
	case *Block:
		parts := make([]string, len(n.Stmts))
		for i, s := range n.Stmts {
			parts[i] = summary(s)
		}
		return strings.Join(parts, "; ")
	case *AssignStmt:
		return fmt.Sprintf("%c=%s", n.Var, n.X)
	case *PrintStmt:
		if n.Kind == PrintString {
			return fmt.Sprintf("print(%q)", n.Str)
		}
		return fmt.Sprintf("print(%s)", n.X)
	case *IfStmt:
		s := fmt.Sprintf("if(%s){%s}", n.Cond, summary(n.Then))
		if n.Else != nil {
			s += "else{" + summary(n.Else) + "}"
		}
		return s
	case *WhileStmt:
		return fmt.Sprintf("while(%s){%s}", n.Cond, summary(n.Body))
	case *ForStmt:
		head := string(n.Var)
		if n.Init != nil {
			head = summary(n.Init)
		}
		return fmt.Sprintf("for(%s;%s;%s){%s}", head, n.Cond, n.Step, summary(n.Body))
	case *ReturnStmt:
		return fmt.Sprintf("return(%s)", n.X)
	}
	return fmt.Sprintf("<%T>", node)
}

func kw(k Keyword) Token { return Token{Kind: KeywordTok, Keyword: k} }
func vr(c byte) Token    { return Token{Kind: VarTok, Var: c} }

func ex(t *testing.T, text string) Token {
	t.Helper()
	p, _, err := expr.Compile(text)
	if err != nil {
		t.Fatal(err)
	}
	return Token{Kind: ExprTok, Expr: p}
}

// ----------------------------------------------------------------------------
// Statement shapes

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"assign_print", "a = 2\nb = 3\nprint a+b", "a=2; b=3; print(a b +)"},
		{"if_else", "a = 5\nif a\n    print a\nelse\n    print 0\n", "a=5; if(a){print(a)}else{print(0)}"},
		{"if_no_else", "if a\n    print a\nprint 1", "if(a){print(a)}; print(1)"},
		{"empty_then", "if a\nb = 1", "if(a){}; b=1"},
		{"empty_else", "if a\n    b = 1\nelse\nc = 2", "if(a){b=1}else{}; c=2"},
		{"while", "i = 0\nwhile i < 3\n    print i\n    i = i + 1\n", "i=0; while(i 3 <){print(i); i=i 1 +}"},
		{"for", "for (i = 0; i < 3; i = i + 1)\n    print i\n", "for(i=0;i 3 <;i 1 +){print(i)}"},
		{"for_bare", "for (i; i; i - 1)\n    print i\n", "for(i;i;i 1 -){print(i)}"},
		{"print_string", `print "hi"`, `print("hi")`},
		{"return", "return a*2", "return(a 2 *)"},
		{
			"else_after_nested_while",
			"if a\n    while b\n        x = 1\nelse\n    y = 2\n",
			"if(a){while(b){x=1}}else{y=2}",
		},
		{
			"else_binds_to_inner_if",
			"if a\n    if b\n        x = 1\n    else\n        x = 2\n",
			"if(a){if(b){x=1}else{x=2}}",
		},
		{
			"else_binds_to_outer_if",
			"if a\n    if b\n        x = 1\nelse\n    x = 2\n",
			"if(a){if(b){x=1}}else{x=2}",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summary(parseProgram(t, tt.src)); got != tt.want {
				t.Errorf("Parse(%q)\n got: %s\nwant: %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseForInitVariable(t *testing.T) {
	b := parseProgram(t, "for (k = 2; k; k = k - 1)\n    print k\n")
	f, ok := b.Stmts[0].(*ForStmt)
	if !ok {
		t.Fatalf("got %T, want *ForStmt", b.Stmts[0])
	}
	if f.Var != 'k' || f.Init == nil || f.Init.Var != 'k' {
		t.Errorf("Var = %c, Init = %+v", f.Var, f.Init)
	}
}

func TestParseNodePositions(t *testing.T) {
	b := parseProgram(t, "a = 1\nwhile a\n    a = a - 1\nreturn a")
	w := b.Stmts[1].(*WhileStmt)
	tests := []struct {
		node Node
		want string
	}{
		{b, "1:1"},
		{b.Stmts[0], "1:1"},
		{w, "2:1"},
		{w.Body, "3:5"},
		{w.Body.Stmts[0], "3:5"},
		{b.Stmts[2], "4:1"},
	}
	for _, tt := range tests {
		if got := tt.node.Pos().String(); got != tt.want {
			t.Errorf("%T at %s, want %s", tt.node, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toks func(t *testing.T) []Token
		want string
	}{
		{"top_level_block_end", func(*testing.T) []Token {
			return []Token{kw(BlockEnd)}
		}, "unexpected end of block"},
		{"top_level_else", func(t *testing.T) []Token {
			return []Token{vr('a'), kw(Assign), ex(t, "1"), kw(Else)}
		}, "else without if"},
		{"if_unterminated", func(t *testing.T) []Token {
			return []Token{kw(If), ex(t, "a"), kw(Print), ex(t, "a")}
		}, "unexpected end of input, expected end of block"},
		{"while_ended_by_else", func(t *testing.T) []Token {
			return []Token{kw(While), ex(t, "a"), kw(Else), kw(BlockEnd)}
		}, "else without if"},
		{"else_body_ended_by_else", func(t *testing.T) []Token {
			return []Token{kw(If), ex(t, "a"), kw(Else), kw(Else), kw(BlockEnd)}
		}, "else without if"},
		{"else_body_unterminated", func(t *testing.T) []Token {
			return []Token{kw(If), ex(t, "a"), kw(Else)}
		}, "unexpected end of input, expected end of block"},
		{"expr_at_statement_start", func(t *testing.T) []Token {
			return []Token{ex(t, "1")}
		}, "unexpected EXPR 1, expected statement"},
		{"string_at_statement_start", func(*testing.T) []Token {
			return []Token{{Kind: StringTok, Str: "s"}}
		}, `unexpected STRING "s", expected statement`},
		{"assign_at_statement_start", func(t *testing.T) []Token {
			return []Token{kw(Assign), ex(t, "1")}
		}, "unexpected =, expected statement"},
		{"assign_missing_eq", func(*testing.T) []Token {
			return []Token{vr('a'), vr('b')}
		}, "expected =, found VAR b"},
		{"assign_missing_expr", func(*testing.T) []Token {
			return []Token{vr('a'), kw(Assign)}
		}, "expected expression after =, found end of input"},
		{"print_missing_operand", func(*testing.T) []Token {
			return []Token{kw(Print), kw(Print)}
		}, "expected expression or string after print, found print"},
		{"return_missing_expr", func(*testing.T) []Token {
			return []Token{kw(Return)}
		}, "expected expression after return, found end of input"},
		{"for_missing_var", func(t *testing.T) []Token {
			return []Token{kw(For), ex(t, "1")}
		}, "expected loop variable after for, found EXPR 1"},
		{"for_missing_step", func(t *testing.T) []Token {
			return []Token{kw(For), vr('i'), ex(t, "i"), kw(BlockEnd)}
		}, "expected expression for loop step, found (end-block)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.toks(t))
			if err == nil {
				t.Fatalf("Parse succeeded: %s", summary(b))
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is %T, want *ParseError", err, err)
			}
			if perr.Msg != tt.want {
				t.Errorf("Msg = %q, want %q", perr.Msg, tt.want)
			}
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a b = 1", "1:3: expected =, found VAR b"},
		{"x = 1\n= 2", "2:1: unexpected =, expected statement"},
		{"a", "1:1: expected =, found end of input"},
	}
	for _, tt := range tests {
		_, err := ParseSource("", strings.NewReader(tt.src))
		if err == nil {
			t.Errorf("ParseSource(%q) succeeded", tt.src)
			continue
		}
		if got := err.Error(); got != tt.want {
			t.Errorf("ParseSource(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestParseSourceLexError(t *testing.T) {
	_, err := ParseSource("", strings.NewReader("print"))
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("err = %v, want *LexError", err)
	}
}

func TestParseUnknownKeywordPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Parse did not panic on an unknown keyword")
		}
	}()
	Parse([]Token{kw(keywordCount)})
}

// ----------------------------------------------------------------------------
// Golden tests

func TestParseGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/parse_*.bl")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files")
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			ast, err := ParseSource("", bytes.NewReader(src))
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := Fprint(&buf, ast); err != nil {
				t.Fatal(err)
			}
			got := buf.String()

			golden := strings.TrimSuffix(f, ".bl") + ".ast.golden"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatal(err)
			}

			if got != string(want) {
				t.Errorf("AST mismatch for %s\n got:\n%s\nwant:\n%s\nRun with UPDATE_GOLDEN=1 to update", f, got, want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Walk tests

func TestWalk(t *testing.T) {
	src, err := os.ReadFile("testdata/parse_nested.bl")
	if err != nil {
		t.Fatal(err)
	}
	b := parseProgram(t, string(src))

	var prints int
	Walk(b, func(n Node) bool {
		if _, ok := n.(*PrintStmt); ok {
			prints++
		}
		return true
	})
	if prints != 2 {
		t.Errorf("found %d PrintStmt, want 2", prints)
	}

	if got := Count(b); got != 7 {
		t.Errorf("Count = %d, want 7", got)
	}
	if got := Depth(b); got != 3 {
		t.Errorf("Depth = %d, want 3", got)
	}
}

func TestWalkPrune(t *testing.T) {
	b := parseProgram(t, "if a\n    print 1\n    print 2\nprint 3")

	var visited []string
	Walk(b, func(n Node) bool {
		visited = append(visited, fmt.Sprintf("%T", n))
		_, isIf := n.(*IfStmt)
		return !isIf
	})
	want := "*syntax.Block *syntax.IfStmt *syntax.PrintStmt"
	if got := strings.Join(visited, " "); got != want {
		t.Errorf("visited %s, want %s", got, want)
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"", 1},
		{"a = 1", 1},
		{"while a\n    a = 0", 2},
		{"if a\n    b = 1\nelse\n    while b\n        b = 0", 3},
	}
	for _, tt := range tests {
		if got := Depth(parseProgram(t, tt.src)); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
	if got := Depth(nil); got != 0 {
		t.Errorf("Depth(nil) = %d, want 0", got)
	}
}

// ----------------------------------------------------------------------------
// Fuzz test

func FuzzParse(f *testing.F) {
	seeds := []string{
		"a = 1",
		"print \"hi\"",
		"if a\n    print a\nelse\n    print 0",
		"while i < 3\n    i = i + 1",
		"for (i = 0; i < 3; i = i + 1)\n    print i",
		"for (i; i; i - 1)\n        print i\n  else",
		"return (a+b)*-c",
		"a = 1/0%2",
		"    else\nelse if",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		// Errors are acceptable; panics are not.
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", src, r)
			}
		}()

		_, _ = ParseSource("fuzz", strings.NewReader(src))
	})
}
