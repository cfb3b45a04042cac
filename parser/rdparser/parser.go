package rdparser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/parser/lexer"
	"github.com/bmatsuo/diylisp/parser/token"
)

var intPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (_ *reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	p.initTokens()
	return p
}

func (p *Parser) initTokens() {
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
}

// ParseProgram parses all remaining expressions in the token stream.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			break
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseSingle parses exactly one expression.  It is an error for the token
// stream to contain anything other than comments after the expression.
func (p *Parser) ParseSingle() (*lisp.LVal, error) {
	p.skipComments()
	if p.PeekType() == token.EOF {
		p.ReadToken()
		return nil, p.incompletef("no expression")
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	p.skipComments()
	if !p.expect(token.EOF) {
		switch p.PeekType() {
		case token.ERROR, token.INVALID, token.INCOMPLETE:
			return nil, p.scanError()
		}
		p.ReadToken()
		return nil, p.errorf("expected end of input after expression but found %s", p.Token().Type)
	}
	return expr, nil
}

func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.ATOM:
		return p.ParseAtom()
	case token.STRING:
		return p.ParseLiteralString()
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.ERROR, token.INVALID, token.INCOMPLETE:
		return nil, p.scanError()
	case token.EOF:
		p.ReadToken()
		return nil, p.incompletef("unexpected EOF")
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token().Type)
	}
}

// ParseAtom parses a boolean, integer, or symbol.  The text of the token is
// classified in that order.
func (p *Parser) ParseAtom() (*lisp.LVal, error) {
	if !p.expect(token.ATOM) {
		return nil, p.errorf("invalid atom: %v", p.PeekType())
	}
	text := p.Token().Text
	switch {
	case text == lisp.TrueToken:
		return p.tokenLVal(lisp.Bool(true)), nil
	case text == lisp.FalseToken:
		return p.tokenLVal(lisp.Bool(false)), nil
	case intPattern.MatchString(text):
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, p.errorf("integer literal overflows int64: %v", text)
		}
		return p.tokenLVal(lisp.Int(x)), nil
	default:
		return p.tokenLVal(lisp.Symbol(text)), nil
	}
}

func (p *Parser) ParseLiteralString() (*lisp.LVal, error) {
	if !p.expect(token.STRING) {
		return nil, p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	if len(text) < 2 {
		return nil, p.errorf("invalid string literal: %v", text)
	}
	return p.tokenLVal(lisp.String(text[1 : len(text)-1])), nil
}

// ParseQuote parses the shorthand 'expr as (quote expr).
func (p *Parser) ParseQuote() (*lisp.LVal, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	quote := p.tokenLVal(lisp.Symbol(lisp.SymQuote))
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.SExpr([]*lisp.LVal{quote, expr}), nil
}

func (p *Parser) ParseConsExpression() (*lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		return nil, p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	var cells []*lisp.LVal
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			return nil, p.incompletef("unmatched %s at %v", open.Text, open.Source)
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
	expr := lisp.SExpr(cells)
	expr.Source = open.Source
	return expr, nil
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	if len(typ) == 0 {
		return peekType != token.EOF
	}
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

// scanError consumes an error token produced by the lexer and converts it to
// a ParseError.
func (p *Parser) scanError() error {
	tok := p.ReadToken()
	return &lisp.ParseError{
		Source:     tok.Source,
		Msg:        tok.Text,
		Incomplete: tok.Type == token.INCOMPLETE,
	}
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return &lisp.ParseError{
		Source: p.Token().Source,
		Msg:    fmt.Sprintf(format, v...),
	}
}

func (p *Parser) incompletef(format string, v ...interface{}) error {
	return &lisp.ParseError{
		Source:     p.Token().Source,
		Msg:        fmt.Sprintf(format, v...),
		Incomplete: true,
	}
}
