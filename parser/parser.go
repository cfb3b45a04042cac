/*
Package parser provides a lisp parser.

	program := <expr>*
	expr    := '(' <expr>* ')' | '\'' <expr> | <string> | <atom>
	string  := '"' (/[^"\\]/ | '\' /./)* '"'
	atom    := /[^[:space:]();]+/
	comment := ';' /[^\n]+/?

An atom is a boolean if it is #t or #f, an integer if it matches
/[+-]?[0-9]+/, and a symbol otherwise.
*/
package parser

import (
	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/parser/rdparser"
	"github.com/bmatsuo/diylisp/parser/token"
)

// DefaultSourceName is the source name reported in the locations of values
// parsed from strings.
const DefaultSourceName = "<string>"

// NewReader returns a lisp.Reader that can be used in a lisp.Runtime.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// Parse parses text containing exactly one expression.  Comments may follow
// the expression but any other trailing text is a *lisp.ParseError.
func Parse(text string) (*lisp.LVal, error) {
	p := rdparser.New(token.NewScannerString(DefaultSourceName, text))
	return p.ParseSingle()
}

// ParseProgram parses every top-level expression in text.  Empty input
// returns no expressions and no error.
func ParseProgram(text string) ([]*lisp.LVal, error) {
	p := rdparser.New(token.NewScannerString(DefaultSourceName, text))
	return p.ParseProgram()
}
