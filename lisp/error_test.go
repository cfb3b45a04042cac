package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bmatsuo/diylisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	env := NewEnv(nil)

	_, err := env.Eval(Symbol("x"))
	require.Error(t, err)
	var uerr *UnboundError
	assert.True(t, errors.As(err, &uerr))
	assert.Equal(t, "x", uerr.Name)
	assert.Equal(t, CondUnbound, Condition(err))
	assert.Equal(t, "unbound-symbol: unbound symbol: x", ErrorString(err))

	_, err = env.Eval(SExpr([]*LVal{Symbol("+"), Int(1), Bool(true)}))
	require.Error(t, err)
	assert.Equal(t, CondType, Condition(err))
	assert.Equal(t, "+: argument 2 is not an int: bool", err.Error())

	_, err = env.Eval(SExpr([]*LVal{Symbol("/"), Int(1), Int(0)}))
	require.Error(t, err)
	assert.Equal(t, CondDomain, Condition(err))

	_, err = env.Eval(SExpr([]*LVal{Symbol("if"), Bool(true)}))
	require.Error(t, err)
	var aerr *ArityError
	assert.True(t, errors.As(err, &aerr))
	assert.Equal(t, "if", aerr.Fun)
	assert.Equal(t, 1, aerr.Got)
	assert.Equal(t, "if: expected 3 arguments (got 1)", err.Error())

	perr := &ParseError{
		Source: &token.Location{File: "test", Line: 1, Col: 4},
		Msg:    "unmatched (",
	}
	assert.Equal(t, "test:1:4: unmatched (", perr.Error())
	assert.Equal(t, CondParse, Condition(fmt.Errorf("load: %w", perr)))

	assert.Equal(t, CondError, Condition(errors.New("other")))
	assert.Nil(t, ErrorStack(errors.New("other")))
}

func TestErrorStack(t *testing.T) {
	env := NewEnv(nil)
	// (define f (lambda (x) (head x)))
	env.Put("f", Lambda(
		Formals("x"),
		SExpr([]*LVal{Symbol("head"), Symbol("x")}),
		env,
	))
	// (define g (lambda () (f '())))
	env.Put("g", Lambda(
		Formals(),
		SExpr([]*LVal{Symbol("f"), Quote(Nil())}),
		env,
	))
	_, err := env.Eval(SExpr([]*LVal{Symbol("g")}))
	require.Error(t, err)
	assert.Equal(t, CondDomain, Condition(err))
	stack := ErrorStack(err)
	require.NotNil(t, stack)
	require.Equal(t, 2, stack.Height())
	assert.Equal(t, "g", stack.Frames[0].Name)
	assert.Equal(t, "f", stack.Top().Name)

	// The runtime stack is unwound after the error.
	assert.Equal(t, 0, env.Runtime.Stack.Height())
}
