package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/bmatsuo/diylisp/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LSymbol
	LInt
	LBool
	LString
	LSExpr
	LFun
)

var ltypeStrings = []string{
	LInvalid: "INVALID",
	LSymbol:  "symbol",
	LInt:     "int",
	LBool:    "bool",
	LString:  "string",
	LSExpr:   "list",
	LFun:     "function",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LVal is a lisp value.  An LVal is never modified after it has been
// constructed and returned to a caller; operations that produce lists or
// strings always allocate new storage.
type LVal struct {
	Type LType

	// Source is the location the value was read from, if it came from the
	// reader.
	Source *token.Location

	Int   int64
	Bool  bool
	Str   string // symbol name or string contents
	Cells []*LVal

	// Variables needed for function values
	Env     *LEnv
	Formals *LVal
	Body    *LVal
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Int returns an LVal representing the integer x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// String returns an LVal representing the string s.  The contents of s are
// stored as read, including any backslash escapes.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// SExpr returns an LVal representing an S-expression containing cells.  The
// cells slice is used directly and must not be modified by the caller
// afterwards.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Nil returns an LVal representing the empty list.
func Nil() *LVal {
	return SExpr(nil)
}

// Quote returns the expression (quote v).
func Quote(v *LVal) *LVal {
	return SExpr([]*LVal{Symbol(SymQuote), v})
}

// Lambda returns a closure with the given formal arguments and body which
// captures env.  The env is shared, not copied.
func Lambda(formals *LVal, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// Len returns the number of cells in a list or the number of characters in a
// string.  A backslash escape counts as one character.  Other values have
// length 0.
func (v *LVal) Len() int {
	switch v.Type {
	case LSExpr:
		return len(v.Cells)
	case LString:
		return charCount(v.Str)
	default:
		return 0
	}
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// IsTrue returns true if v is the boolean #t.  No other value is considered
// true by conditional expressions.
func (v *LVal) IsTrue() bool {
	return v.Type == LBool && v.Bool
}

// IsAtom returns true unless v is a non-empty list.
func (v *LVal) IsAtom() bool {
	return v.Type != LSExpr || len(v.Cells) == 0
}

// HeadSymbol returns the name of the symbol in the first cell of a list.  The
// second return value is false if v is not a list starting with a symbol.
func (v *LVal) HeadSymbol() (string, bool) {
	if v.Type != LSExpr || len(v.Cells) == 0 || v.Cells[0].Type != LSymbol {
		return "", false
	}
	return v.Cells[0].Str, true
}

// Copy creates a deep copy of the receiver.  The environment captured by a
// function is shared between the original and the copy.
func (v *LVal) Copy() *LVal {
	if v == nil {
		return nil
	}
	cp := &LVal{}
	*cp = *v                 // shallow copy of all fields
	cp.Cells = v.copyCells() // deep copy of v.Cells
	cp.Formals = v.Formals.Copy()
	cp.Body = v.Body.Copy()
	return cp
}

func (v *LVal) copyCells() []*LVal {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*LVal, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

// Equal returns true if v and other are structurally equal.  Lists are equal
// when their cells are equal in order.  Functions are equal when their
// formals and bodies are equal and they capture the same environment.
func (v *LVal) Equal(other *LVal) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LSymbol, LString:
		return v.Str == other.Str
	case LInt:
		return v.Int == other.Int
	case LBool:
		return v.Bool == other.Bool
	case LSExpr:
		return cellsEqual(v.Cells, other.Cells)
	case LFun:
		return v.Env == other.Env &&
			v.Formals.Equal(other.Formals) &&
			v.Body.Equal(other.Body)
	default:
		return false
	}
}

func cellsEqual(a, b []*LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.FormatInt(v.Int, 10)
	case LBool:
		if v.Bool {
			return TrueToken
		}
		return FalseToken
	case LSymbol:
		return v.Str
	case LString:
		return `"` + v.Str + `"`
	case LSExpr:
		if sym, ok := v.HeadSymbol(); ok && sym == SymQuote {
			return exprString(v.Cells[1:], "'", "")
		}
		return exprString(v.Cells, "(", ")")
	case LFun:
		return fmt.Sprintf("(lambda %v %v)", v.Formals, v.Body)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func exprString(cells []*LVal, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}

// charLen returns the number of bytes in the first character of s.  A
// backslash and the rune following it form a single character.
func charLen(s string) int {
	_, n := utf8.DecodeRuneInString(s)
	if n == 1 && s[0] == '\\' && len(s) > 1 {
		_, m := utf8.DecodeRuneInString(s[1:])
		n += m
	}
	return n
}

func charCount(s string) int {
	count := 0
	for len(s) > 0 {
		s = s[charLen(s):]
		count++
	}
	return count
}
