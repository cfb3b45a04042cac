package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLVal_String(t *testing.T) {
	env := NewEnv(nil)
	tests := []struct {
		v    *LVal
		repr string
	}{
		{Int(-12), "-12"},
		{Bool(true), "#t"},
		{Bool(false), "#f"},
		{Symbol("foo"), "foo"},
		{String(""), `""`},
		{String(`Say \"what\"`), `"Say \"what\""`},
		{Nil(), "()"},
		{SExpr([]*LVal{Int(1), SExpr([]*LVal{Symbol("a"), String("b")})}), `(1 (a "b"))`},
		{Quote(Symbol("x")), "'x"},
		{Quote(SExpr([]*LVal{Int(1), Int(2)})), "'(1 2)"},
		{Quote(Quote(Int(3))), "''3"},
		{Lambda(Formals("x", "y"), SExpr([]*LVal{Symbol("+"), Symbol("x"), Symbol("y")}), env), "(lambda (x y) (+ x y))"},
	}
	for _, test := range tests {
		assert.Equal(t, test.repr, test.v.String())
	}
}

func TestLVal_Equal(t *testing.T) {
	a := SExpr([]*LVal{Int(1), String("a"), SExpr([]*LVal{Symbol("b")})})
	b := SExpr([]*LVal{Int(1), String("a"), SExpr([]*LVal{Symbol("b")})})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(SExpr([]*LVal{Int(1), String("a")})))
	assert.False(t, Symbol("a").Equal(String("a")))
	assert.False(t, Int(0).Equal(Bool(false)))
	assert.True(t, Nil().Equal(SExpr([]*LVal{})))

	env := NewEnv(nil)
	body := SExpr([]*LVal{Symbol("+"), Symbol("x"), Int(1)})
	f1 := Lambda(Formals("x"), body, env)
	f2 := Lambda(Formals("x"), body.Copy(), env)
	assert.True(t, f1.Equal(f2))
	f3 := Lambda(Formals("x"), body, env.Extend())
	assert.False(t, f1.Equal(f3))
	f4 := Lambda(Formals("y"), body, env)
	assert.False(t, f1.Equal(f4))
}

func TestLVal_Copy(t *testing.T) {
	env := NewEnv(nil)
	v := SExpr([]*LVal{Int(1), SExpr([]*LVal{Symbol("b")})})
	cp := v.Copy()
	assert.True(t, v.Equal(cp))
	cp.Cells[1].Cells[0] = Symbol("c")
	assert.Equal(t, "(1 (b))", v.String())

	f := Lambda(Formals("x"), Symbol("x"), env)
	fcp := f.Copy()
	assert.True(t, f.Equal(fcp))
	assert.True(t, f.Env == fcp.Env)
}

func TestLVal_predicates(t *testing.T) {
	assert.True(t, Nil().IsNil())
	assert.False(t, Int(0).IsNil())

	assert.True(t, Bool(true).IsTrue())
	assert.False(t, Bool(false).IsTrue())
	assert.False(t, Int(1).IsTrue())
	assert.False(t, String("#t").IsTrue())

	assert.True(t, Nil().IsAtom())
	assert.True(t, Symbol("a").IsAtom())
	assert.False(t, SExpr([]*LVal{Int(1)}).IsAtom())

	assert.Equal(t, 3, String("héé").Len())
	assert.Equal(t, 2, SExpr([]*LVal{Int(1), Int(2)}).Len())
	assert.Equal(t, 0, Int(7).Len())

	assert.Equal(t, "list", LSExpr.String())
	assert.Equal(t, "INVALID", LType(99).String())
}

func TestLVal_noAliasing(t *testing.T) {
	env := NewEnv(nil)
	env.Put("x", SExpr([]*LVal{Int(1), Int(2), Int(3)}))

	tail, err := env.Eval(SExpr([]*LVal{Symbol("tail"), Symbol("x")}))
	assert.NoError(t, err)
	tail.Cells[0] = Symbol("changed")

	src := SExpr([]*LVal{Int(1), SExpr([]*LVal{Int(2)})})
	quoted, err := env.Eval(Quote(src))
	assert.NoError(t, err)
	quoted.Cells[0] = Symbol("changed")
	quoted.Cells[1].Cells[0] = Symbol("changed")
	assert.Equal(t, "(1 (2))", src.String())

	consed, err := env.Eval(SExpr([]*LVal{Symbol("cons"), Int(0), Symbol("x")}))
	assert.NoError(t, err)
	consed.Cells[1] = Symbol("changed")

	x, err := env.Get("x")
	assert.NoError(t, err)
	assert.Equal(t, "(1 2 3)", x.String())
}

func TestCharCount(t *testing.T) {
	tests := []struct {
		s     string
		count int
		first string
	}{
		{"", 0, ""},
		{"abc", 3, "a"},
		{"héllo", 5, "h"},
		{"éa", 2, "é"},
		{`\"a`, 2, `\"`},
		{`a\"b`, 3, "a"},
		{`\\`, 1, `\\`},
		{`\é`, 1, `\é`},
		{`\`, 1, `\`},
	}
	for _, test := range tests {
		assert.Equal(t, test.count, charCount(test.s), test.s)
		assert.Equal(t, test.first, test.s[:charLen(test.s)], test.s)
	}
}
