package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text.  The entire
// source is buffered in memory.
type Scanner struct {
	file    string
	src     []byte
	readErr error

	start     int // byte offset of the current token
	startLine int
	startCol  int

	pos  int // byte offset of c
	next int // byte offset of the rune following c
	c    rune
	line int // line of the rune at next
	col  int // column of the rune at next
}

// NewScanner initializes and returns a new Scanner that reads its source from
// r.  A read error is reported by the first call to ScanRune that needs the
// missing input.
func NewScanner(file string, r io.Reader) *Scanner {
	src, err := io.ReadAll(r)
	s := newScanner(file, src)
	s.readErr = err
	return s
}

// NewScannerString returns a Scanner over src.
func NewScannerString(file string, src string) *Scanner {
	return newScanner(file, []byte(src))
}

func newScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.next])
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.src) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF, or the error
// that prevented the input from being read.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.src) {
		if s.readErr != nil {
			return s.readErr
		}
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
	}
	s.c = c
	s.pos = s.next
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}
