package syntax

import "fmt"

// Pos is a source position. Line and Col are 1-based; Col counts bytes.
// The zero value is an invalid position.
type Pos struct {
	File string
	Line int
	Col  int
}

// NewPos returns the position line:col in file.
func NewPos(file string, line, col int) Pos {
	return Pos{File: file, Line: line, Col: col}
}

// String formats p as "file:line:col", or "line:col" without a file name.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsValid reports whether p refers to a line.
func (p Pos) IsValid() bool {
	return p.Line > 0
}
