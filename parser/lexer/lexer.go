package lexer

import (
	"fmt"
	"io"
	"unicode"

	"github.com/bmatsuo/diylisp/parser/token"
)

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// readErr is the last error returned by the scanner
	readErr error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readChar()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '\'':
		return lex.charToken(token.QUOTE)
	case ';':
		for {
			c, ok := lex.peekRune()
			if !ok || c == '\n' {
				break
			}
			if err := lex.readChar(); err != nil {
				return lex.emitError(err, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	default:
		return lex.readAtom()
	}
}

// readString scans a string literal.  Escape sequences are validated only to
// the extent that a backslash always consumes the following rune, so an
// escaped quote never terminates the literal.  The escapes are kept verbatim
// in the token text.
func (lex *Lexer) readString() *token.Token {
	for {
		err := lex.readChar()
		if err == io.EOF {
			return lex.incomplete("unterminated string literal")
		}
		if err != nil {
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '\\':
			err := lex.readChar()
			if err == io.EOF {
				return lex.incomplete("unterminated string literal")
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		case '"':
			c, ok := lex.peekRune()
			if ok && !canFollowString(c) {
				return lex.trailingString()
			}
			return lex.scanner.EmitToken(token.STRING)
		}
	}
}

// trailingString consumes the text glued to the end of a string literal and
// reports it as an error.  A string is closed by its first unescaped quote.
func (lex *Lexer) trailingString() *token.Token {
	for {
		c, ok := lex.peekRune()
		if !ok || canFollowString(c) {
			break
		}
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	tok := lex.scanner.EmitToken(token.ERROR)
	tok.Text = fmt.Sprintf("unexpected text after string literal: %s", tok.Text)
	return tok
}

func (lex *Lexer) readAtom() *token.Token {
	for {
		c, ok := lex.peekRune()
		if !ok || isDelimiter(c) {
			break
		}
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.scanner.EmitToken(token.ATOM)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.incomplete("unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) incomplete(msg string) *token.Token {
	// Later calls to NextToken must keep reporting EOF.
	lex.readErr = io.EOF
	return lex.emit(token.INCOMPLETE, msg)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.peekRune()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		if err := lex.readChar(); err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() (rune, bool) {
	return lex.scanner.Peek()
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func canFollowString(c rune) bool {
	return unicode.IsSpace(c) || c == ')' || c == ';'
}

// isDelimiter reports whether c ends an atom.
func isDelimiter(c rune) bool {
	return unicode.IsSpace(c) || c == '(' || c == ')' || c == ';'
}
