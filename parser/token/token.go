package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

type Type uint

// Type constants used by the diylisp lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// INCOMPLETE is an error token produced when input ends inside a
	// token, such as an unterminated string literal.
	INCOMPLETE

	// ATOM is any run of characters that is not a paren, whitespace, or the
	// start of a string.  The parser decides whether it is a boolean, an
	// integer, or a symbol.
	ATOM
	STRING

	COMMENT

	QUOTE

	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:    "invalid",
		ERROR:      "error",
		EOF:        "EOF",
		INCOMPLETE: "incomplete",
		ATOM:       "atom",
		STRING:     "string",
		COMMENT:    ";",
		QUOTE:      "'",
		PAREN_L:    "(",
		PAREN_R:    ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
