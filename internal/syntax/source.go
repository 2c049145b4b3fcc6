package syntax

import "bytes"

// source hands out the input one line at a time with its line number.
// The whole input is held in memory.
type source struct {
	filename string
	buf      []byte
	offs     int // offset of the next unread line

	// Current line
	line int    // 1-based line number, 0 before the first nextLine
	text string // line content without the newline or a trailing '\r'
}

func newSource(filename string, buf []byte) source {
	return source{filename: filename, buf: buf}
}

// nextLine advances to the next line. It reports false at end of input.
// Input ending in a newline has no extra empty line after it.
func (s *source) nextLine() bool {
	if s.offs >= len(s.buf) {
		return false
	}
	rest := s.buf[s.offs:]
	n := bytes.IndexByte(rest, '\n')
	if n < 0 {
		n = len(rest)
		s.offs = len(s.buf)
	} else {
		s.offs += n + 1
	}
	s.text = string(bytes.TrimSuffix(rest[:n], []byte{'\r'}))
	s.line++
	return true
}

// pos returns the position of byte i of the current line.
func (s *source) pos(i int) Pos {
	return NewPos(s.filename, s.line, i+1)
}

// eof returns the position just past the last byte of input.
func (s *source) eof() Pos {
	if s.line == 0 {
		return NewPos(s.filename, 1, 1)
	}
	if len(s.buf) > 0 && s.buf[len(s.buf)-1] == '\n' {
		return NewPos(s.filename, s.line+1, 1)
	}
	return NewPos(s.filename, s.line, len(s.text)+1)
}

// isBlank reports whether text holds only whitespace.
func isBlank(text string) bool {
	for i := 0; i < len(text); i++ {
		if !isWhitespace(text[i]) {
			return false
		}
	}
	return true
}

// isWhitespace reports whether c is skipped between tokens.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// indentation returns the number of leading spaces in text. Tabs do not
// count towards the block depth.
func indentation(text string) int {
	n := 0
	for n < len(text) && text[n] == ' ' {
		n++
	}
	return n
}
