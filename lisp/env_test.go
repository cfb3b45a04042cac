package lisp

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceReader is a Reader that ignores its input and returns a fixed set of
// expressions.
type sliceReader []*LVal

func (r sliceReader) Read(name string, _ io.Reader) ([]*LVal, error) {
	return r, nil
}

func TestEnv_scope(t *testing.T) {
	root := NewEnv(nil)
	assert.Len(t, root.Scope, 0)

	root.Put("x", Int(1))
	child := root.Extend()
	assert.Equal(t, root.Runtime, child.Runtime)
	assert.Equal(t, root, child.Root())
	assert.NotEqual(t, root.ID, child.ID)

	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())

	child.Put("x", Int(2))
	v, err = child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())
	v, err = root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())

	root.Put("x", Int(3))
	v, err = root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())

	_, err = child.Get("y")
	var uerr *UnboundError
	assert.True(t, errors.As(err, &uerr))
}

func TestEnv_Eval(t *testing.T) {
	env := NewEnv(nil)
	for _, v := range []*LVal{Int(3), Bool(false), String("s"), Nil()} {
		r, err := env.Eval(v)
		require.NoError(t, err)
		assert.True(t, v.Equal(r))
	}

	// (1 2) is not a function call
	_, err := env.Eval(SExpr([]*LVal{Int(1), Int(2)}))
	assert.Equal(t, CondType, Condition(err))

	// ((lambda (x) (* x x)) 7)
	sq := SExpr([]*LVal{Symbol("lambda"), Formals("x"), SExpr([]*LVal{Symbol("*"), Symbol("x"), Symbol("x")})})
	r, err := env.Eval(SExpr([]*LVal{sq, Int(7)}))
	require.NoError(t, err)
	assert.Equal(t, "49", r.String())

	_, err = env.Eval(SExpr([]*LVal{sq}))
	var aerr *ArityError
	if assert.True(t, errors.As(err, &aerr)) {
		assert.Equal(t, "lambda", aerr.Fun)
		assert.Equal(t, "1", aerr.Expect)
	}
	assert.Len(t, env.Scope, 0)
}

func TestEnv_Load(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.LoadString("test", "1")
	assert.Error(t, err)

	prog := sliceReader{
		SExpr([]*LVal{Symbol("define"), Symbol("x"), Int(4)}),
		SExpr([]*LVal{Symbol("+"), Symbol("x"), Int(1)}),
	}
	err = InitializeUserEnv(env, WithReader(prog))
	require.NoError(t, err)
	v, err := env.LoadString("test", "")
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())

	env = NewEnv(nil)
	err = InitializeUserEnv(env, WithReader(sliceReader(nil)))
	require.NoError(t, err)
	v, err = env.Load("empty", strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, v.IsNil())
}

// (define loop (lambda (n) (loop (+ n 1))))
func loopFun(env *LEnv) *LVal {
	return Lambda(
		Formals("n"),
		SExpr([]*LVal{Symbol("loop"), SExpr([]*LVal{Symbol("+"), Symbol("n"), Int(1)})}),
		env,
	)
}

func TestEnv_maxStackHeight(t *testing.T) {
	env := NewEnv(nil)
	err := InitializeUserEnv(env, WithMaximumStackHeight(50))
	require.NoError(t, err)
	env.Put("loop", loopFun(env))
	_, err = env.Eval(SExpr([]*LVal{Symbol("loop"), Int(0)}))
	require.Error(t, err)
	assert.Equal(t, CondDomain, Condition(err))
	assert.Equal(t, 50, ErrorStack(err).Height())
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	err = InitializeUserEnv(env, WithMaximumStackHeight(-1))
	assert.Error(t, err)
}

func TestEnv_trace(t *testing.T) {
	var buf bytes.Buffer
	env := NewEnv(nil)
	err := InitializeUserEnv(env, WithTrace(&buf), WithStderr(io.Discard))
	require.NoError(t, err)
	// (define inc (lambda (n) (+ n 1)))
	env.Put("inc", Lambda(Formals("n"), SExpr([]*LVal{Symbol("+"), Symbol("n"), Int(1)}), env))
	// (define twice (lambda (n) (inc (inc n))))
	env.Put("twice", Lambda(Formals("n"), SExpr([]*LVal{
		Symbol("inc"),
		SExpr([]*LVal{Symbol("inc"), Symbol("n")}),
	}), env))
	v, err := env.Eval(SExpr([]*LVal{Symbol("twice"), Int(1)}))
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
	expect := "" +
		"trace: (twice 1)\n" +
		"trace:   (inc 1)\n" +
		"trace:   (inc 2)\n"
	assert.Equal(t, expect, buf.String())
}

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	assert.True(t, s.Push("a", 1))
	assert.True(t, s.Push("b", 2))
	assert.False(t, s.Push("c", 3))
	cp := s.Copy()
	assert.Equal(t, "b", s.Pop().Name)
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())

	var buf bytes.Buffer
	_, err := cp.DebugPrint(&buf)
	require.NoError(t, err)
	expect := "" +
		"Stack Trace [2 frames -- entrypoint last]:\n" +
		"  height 1: b [env 2]\n" +
		"  height 0: a [env 1]\n"
	assert.Equal(t, expect, buf.String())
}

func TestDefaultOps(t *testing.T) {
	var special []string
	for _, op := range DefaultSpecialOps() {
		special = append(special, op.Name())
		assert.Equal(t, LSExpr, op.Formals().Type)
	}
	assert.Equal(t, []string{
		"quote", "atom", "eq", "if", "define", "lambda", "defn",
		"cond", "let", "cons", "head", "tail", "empty",
	}, special)

	var builtins []string
	for _, op := range DefaultBuiltins() {
		builtins = append(builtins, op.Name())
	}
	assert.Equal(t, []string{"+", "-", "*", "/", "mod", ">", "<", "="}, builtins)

	// Operators are recognized by name and are never bound in the root
	// environment.
	env := NewEnv(nil)
	for _, name := range append(special, builtins...) {
		_, err := env.Get(name)
		assert.Error(t, err, name)
	}
}

// (define length (lambda (lst) (if (empty lst) 0 (+ 1 (length (tail lst))))))
func benchmarkLength(b *testing.B, n int) {
	env := NewEnv(nil)
	env.Put("length", Lambda(Formals("lst"), SExpr([]*LVal{
		Symbol("if"),
		SExpr([]*LVal{Symbol("empty"), Symbol("lst")}),
		Int(0),
		SExpr([]*LVal{
			Symbol("+"),
			Int(1),
			SExpr([]*LVal{Symbol("length"), SExpr([]*LVal{Symbol("tail"), Symbol("lst")})}),
		}),
	}), env))
	cells := make([]*LVal, n)
	for i := range cells {
		cells[i] = Int(int64(i))
	}
	env.Put("xs", SExpr(cells))
	expr := SExpr([]*LVal{Symbol("length"), Symbol("xs")})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := env.Eval(expr)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCall_length1000(b *testing.B) { benchmarkLength(b, 1000) }
func BenchmarkCall_length4000(b *testing.B) { benchmarkLength(b, 4000) }

func TestEnv_noTrace(t *testing.T) {
	var stderr bytes.Buffer
	env := NewEnv(nil)
	err := InitializeUserEnv(env, WithStderr(&stderr))
	require.NoError(t, err)
	assert.Nil(t, env.Runtime.Logger)
	env.Put("id", Lambda(Formals("x"), Symbol("x"), env))
	v, err := env.Eval(SExpr([]*LVal{Symbol("id"), Int(5)}))
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
	assert.Equal(t, "", stderr.String())
}
