package lisp

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment.  Environments are shared by reference: a
// function value holds a pointer to the environment it was defined in, so
// later definitions in that environment are visible to the function.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  When parent is nil the
// returned environment is an empty root scope with a new Runtime.  Otherwise
// the returned environment is a child scope of parent that shares its
// Runtime.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

// InitializeUserEnv applies config to the root environment env.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	return nil
}

// Extend returns a new scope whose parent is env.
func (env *LEnv) Extend() *LEnv {
	return NewEnv(env)
}

// Root returns the global scope of env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Get returns the value bound to name in the nearest enclosing scope.  If name
// is not bound Get returns an *UnboundError.
func (env *LEnv) Get(name string) (*LVal, error) {
	for e := env; e != nil; e = e.Parent {
		v, ok := e.Scope[name]
		if ok {
			return v, nil
		}
	}
	return nil, env.unboundError(name)
}

// Put binds name to v in env.  Bindings in parent scopes are shadowed, never
// modified.
func (env *LEnv) Put(name string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}

// LoadString reads expressions from source and evaluates them in order.
func (env *LEnv) LoadString(name, source string) (*LVal, error) {
	return env.Load(name, strings.NewReader(source))
}

// Load reads LVals from r and evaluates them in order.  The value returned by
// the last evaluated LVal will be retured.  Nothing is evaluated if r cannot
// be parsed, and evaluation stops at the first error.  If env.Runtime.Reader
// has not been set then an error will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, errors.New("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	ret := Nil()
	for _, expr := range exprs {
		ret, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		return env.Get(v.Str)
	case LSExpr:
		if len(v.Cells) == 0 {
			return v, nil
		}
		return env.EvalSExpr(v)
	case LInt, LBool, LString, LFun:
		return v, nil
	default:
		return nil, env.typeErrorf("eval", "cannot evaluate value of type %v", v.Type)
	}
}

// EvalSExpr evaluates the non-empty list s.  Special forms and primitive
// operators are recognized by the symbol in the head position.  Any other
// list is a function call.
func (env *LEnv) EvalSExpr(s *LVal) (*LVal, error) {
	if s.Type != LSExpr || len(s.Cells) == 0 {
		return nil, env.typeErrorf("eval", "not a function call: %v", s)
	}
	name := SymLambda
	if sym, ok := s.HeadSymbol(); ok {
		if op := lookupSpecialOp(sym); op != nil {
			args := s.Cells[1:]
			err := op.checkArity(env, args)
			if err != nil {
				return nil, err
			}
			return op.Eval(env, args)
		}
		if fn := lookupBuiltin(sym); fn != nil {
			args, err := env.evalCells(s.Cells[1:])
			if err != nil {
				return nil, err
			}
			err = fn.checkArity(env, args)
			if err != nil {
				return nil, err
			}
			return fn.Eval(env, args)
		}
		name = sym
	}

	f, err := env.Eval(s.Cells[0])
	if err != nil {
		return nil, err
	}
	if f.Type != LFun {
		return nil, env.typeErrorf("apply", "first element of expression is not a function: %v", f)
	}
	args, err := env.evalCells(s.Cells[1:])
	if err != nil {
		return nil, err
	}
	return env.Call(name, f, args)
}

// evalCells evaluates each of cells from left to right and returns the
// results in a new slice.
func (env *LEnv) evalCells(cells []*LVal) ([]*LVal, error) {
	vals := make([]*LVal, len(cells))
	for i := range cells {
		v, err := env.Eval(cells[i])
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Call invokes the function fun with args.  The arguments are bound in a new
// child scope of the environment fun captured when it was created, not in
// env, which gives functions lexical scope.  The name is used in error
// messages and stack traces.
func (env *LEnv) Call(name string, fun *LVal, args []*LVal) (*LVal, error) {
	if fun.Type != LFun {
		return nil, env.typeErrorf("apply", "not a function: %v", fun.Type)
	}
	nargs := len(fun.Formals.Cells)
	if len(args) != nargs {
		return nil, env.arityError(name, strconv.Itoa(nargs), len(args))
	}
	callenv := NewEnv(fun.Env)
	for i, argSym := range fun.Formals.Cells {
		callenv.Put(argSym.Str, args[i])
	}

	stack := env.Runtime.Stack
	if !stack.Push(name, callenv.ID) {
		return nil, env.domainErrorf(name, "maximum stack height exceeded: %d", stack.MaxHeight)
	}
	defer stack.Pop()
	if env.Runtime.Logger != nil {
		call := append([]*LVal{Symbol(name)}, args...)
		env.Runtime.tracef("%s%s", strings.Repeat("  ", stack.Height()-1), exprString(call, "(", ")"))
	}

	return callenv.Eval(fun.Body)
}
