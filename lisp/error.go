package lisp

import (
	"errors"
	"fmt"

	"github.com/bmatsuo/diylisp/parser/token"
)

// Error conditions reported by Condition.
const (
	CondParse   = "parse-error"
	CondUnbound = "unbound-symbol"
	CondArity   = "arity-error"
	CondType    = "type-error"
	CondDomain  = "domain-error"
	CondError   = "error"
)

// ParseError is returned by a Reader when source text is malformed.  No
// expressions are returned along with a ParseError.
type ParseError struct {
	Source *token.Location
	Msg    string

	// Incomplete is true when the source ended before an expression was
	// closed.  Interactive readers may request more input in this case.
	Incomplete bool
}

func (err *ParseError) Error() string {
	if err.Source == nil {
		return err.Msg
	}
	return fmt.Sprintf("%v: %s", err.Source, err.Msg)
}

// UnboundError is returned when a symbol is not bound in any scope.
type UnboundError struct {
	Name  string
	Stack *CallStack
}

func (err *UnboundError) Error() string {
	return fmt.Sprintf("unbound symbol: %s", err.Name)
}

// ArityError is returned when a function or special form receives the wrong
// number of arguments.  Expect holds a description such as "2" or "at least
// 2".
type ArityError struct {
	Fun    string
	Expect string
	Got    int
	Stack  *CallStack
}

func (err *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %s arguments (got %d)", err.Fun, err.Expect, err.Got)
}

// TypeError is returned when an operation receives a value of the wrong
// type, or a special form is given a malformed sub-form.
type TypeError struct {
	Op    string
	Msg   string
	Stack *CallStack
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", err.Op, err.Msg)
}

// DomainError is returned when an operation receives a value of the correct
// type that it cannot operate on, like the head of an empty list.
type DomainError struct {
	Op    string
	Msg   string
	Stack *CallStack
}

func (err *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", err.Op, err.Msg)
}

// Condition returns a short name classifying err.
func Condition(err error) string {
	var (
		perr *ParseError
		uerr *UnboundError
		aerr *ArityError
		terr *TypeError
		derr *DomainError
	)
	switch {
	case errors.As(err, &perr):
		return CondParse
	case errors.As(err, &uerr):
		return CondUnbound
	case errors.As(err, &aerr):
		return CondArity
	case errors.As(err, &terr):
		return CondType
	case errors.As(err, &derr):
		return CondDomain
	default:
		return CondError
	}
}

// ErrorString formats err as a diagnostic line, prefixed by its Condition.
func ErrorString(err error) string {
	return Condition(err) + ": " + err.Error()
}

// ErrorStack returns the call stack captured by an evaluation error, or nil
// if err did not come from the evaluator.
func ErrorStack(err error) *CallStack {
	var (
		uerr *UnboundError
		aerr *ArityError
		terr *TypeError
		derr *DomainError
	)
	switch {
	case errors.As(err, &uerr):
		return uerr.Stack
	case errors.As(err, &aerr):
		return aerr.Stack
	case errors.As(err, &terr):
		return terr.Stack
	case errors.As(err, &derr):
		return derr.Stack
	default:
		return nil
	}
}

// Errors carrying the call stack of env at the time of the failure.

func (env *LEnv) unboundError(name string) error {
	return &UnboundError{Name: name, Stack: env.Runtime.Stack.Copy()}
}

func (env *LEnv) arityError(fun string, expect string, got int) error {
	return &ArityError{Fun: fun, Expect: expect, Got: got, Stack: env.Runtime.Stack.Copy()}
}

func (env *LEnv) typeErrorf(op string, format string, v ...interface{}) error {
	return &TypeError{Op: op, Msg: fmt.Sprintf(format, v...), Stack: env.Runtime.Stack.Copy()}
}

func (env *LEnv) domainErrorf(op string, format string, v ...interface{}) error {
	return &DomainError{Op: op, Msg: fmt.Sprintf(format, v...), Stack: env.Runtime.Stack.Copy()}
}
