package syntax

import "testing"

func TestSourceLines(t *testing.T) {
	s := newSource("t.bl", []byte("a = 1\r\n\n    print a"))

	want := []string{"a = 1", "", "    print a"}
	for i, w := range want {
		if !s.nextLine() {
			t.Fatalf("line %d: nextLine returned false", i+1)
		}
		if s.line != i+1 {
			t.Errorf("line = %d, want %d", s.line, i+1)
		}
		if s.text != w {
			t.Errorf("line %d text = %q, want %q", i+1, s.text, w)
		}
	}
	if s.nextLine() {
		t.Fatalf("unexpected extra line %q", s.text)
	}
	if got := s.eof().String(); got != "t.bl:3:12" {
		t.Errorf("eof = %s, want t.bl:3:12", got)
	}
}

func TestSourceTrailingNewline(t *testing.T) {
	s := newSource("", []byte("x\n"))
	n := 0
	for s.nextLine() {
		n++
	}
	if n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
	if got := s.eof().String(); got != "2:1" {
		t.Errorf("eof = %s, want 2:1", got)
	}
}

func TestSourceEmpty(t *testing.T) {
	s := newSource("", nil)
	if s.nextLine() {
		t.Fatal("empty input produced a line")
	}
	if got := s.eof().String(); got != "1:1" {
		t.Errorf("eof = %s, want 1:1", got)
	}
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"x", 0},
		{"    x", 4},
		{"        x", 8},
		{"\t x", 0},
		{"  ", 2},
	}
	for _, tt := range tests {
		if got := indentation(tt.text); got != tt.want {
			t.Errorf("indentation(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
	if !isBlank("  \t\r") || isBlank("  x") {
		t.Error("isBlank misclassified")
	}
}
