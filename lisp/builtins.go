package lisp

import (
	"strconv"
)

// VarArgSymbol is the symbol that indicates a variadic argument in a list of
// formal arguments.
const VarArgSymbol = "&"

// LBuiltin is a function that executes a special operator or a primitive
// operator.
type LBuiltin func(env *LEnv, args []*LVal) (*LVal, error)

// LBuiltinDef is a built-in operator
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args []*LVal) (*LVal, error)
}

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) (*LVal, error) {
	return fun.fun(env, args)
}

// checkArity compares the number of args to the formal arguments of fun.  A
// VarArgSymbol in the formals means that any number of additional arguments
// are accepted.
func (fun *langBuiltin) checkArity(env *LEnv, args []*LVal) error {
	n := 0
	vargs := false
	for _, sym := range fun.formals.Cells {
		if sym.Str == VarArgSymbol {
			vargs = true
			break
		}
		n++
	}
	if vargs {
		if len(args) < n {
			return env.arityError(fun.name, "at least "+strconv.Itoa(n), len(args))
		}
		return nil
	}
	if len(args) != n {
		return env.arityError(fun.name, strconv.Itoa(n), len(args))
	}
	return nil
}

// Formals returns a list of symbols naming formal arguments.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i, sym := range argSymbols {
		cells[i] = Symbol(sym)
	}
	return SExpr(cells)
}

func builtinTable(defs []*langBuiltin) map[string]*langBuiltin {
	table := make(map[string]*langBuiltin, len(defs))
	for _, def := range defs {
		if _, ok := table[def.name]; ok {
			panic("builtin already defined: " + def.name)
		}
		table[def.name] = def
	}
	return table
}

// Primitive operators receive evaluated arguments.  They are recognized by
// name like special operators and are not first-class values.
var langBuiltins = []*langBuiltin{
	{"+", Formals("a", "b", VarArgSymbol, "rest"), builtinAdd},
	{"-", Formals("a", "b", VarArgSymbol, "rest"), builtinSub},
	{"*", Formals("a", "b", VarArgSymbol, "rest"), builtinMul},
	{"/", Formals("a", "b", VarArgSymbol, "rest"), builtinDiv},
	{"mod", Formals("a", "b"), builtinMod},
	{">", Formals("a", "b"), builtinGT},
	{"<", Formals("a", "b"), builtinLT},
	{"=", Formals("a", "b"), builtinEqNum},
}

var builtinOpTable map[string]*langBuiltin

func init() {
	builtinOpTable = builtinTable(langBuiltins)
}

// DefaultBuiltins returns the primitive operators recognized by the
// evaluator.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

func lookupBuiltin(name string) *langBuiltin {
	return builtinOpTable[name]
}

func builtinAdd(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("+", args)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, c := range args {
		sum += c.Int
	}
	return Int(sum), nil
}

func builtinSub(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("-", args)
	if err != nil {
		return nil, err
	}
	diff := args[0].Int
	for _, c := range args[1:] {
		diff -= c.Int
	}
	return Int(diff), nil
}

func builtinMul(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("*", args)
	if err != nil {
		return nil, err
	}
	prod := int64(1)
	for _, c := range args {
		prod *= c.Int
	}
	return Int(prod), nil
}

// Integer division truncates toward zero.
func builtinDiv(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("/", args)
	if err != nil {
		return nil, err
	}
	quo := args[0].Int
	for _, c := range args[1:] {
		if c.Int == 0 {
			return nil, env.domainErrorf("/", "division by zero")
		}
		quo /= c.Int
	}
	return Int(quo), nil
}

func builtinMod(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("mod", args)
	if err != nil {
		return nil, err
	}
	if args[1].Int == 0 {
		return nil, env.domainErrorf("mod", "division by zero")
	}
	return Int(args[0].Int % args[1].Int), nil
}

func builtinGT(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts(">", args)
	if err != nil {
		return nil, err
	}
	return Bool(args[0].Int > args[1].Int), nil
}

func builtinLT(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("<", args)
	if err != nil {
		return nil, err
	}
	return Bool(args[0].Int < args[1].Int), nil
}

func builtinEqNum(env *LEnv, args []*LVal) (*LVal, error) {
	err := env.checkInts("=", args)
	if err != nil {
		return nil, err
	}
	return Bool(args[0].Int == args[1].Int), nil
}

func (env *LEnv) checkInts(op string, args []*LVal) error {
	for i, c := range args {
		if c.Type != LInt {
			return env.typeErrorf(op, "argument %d is not an int: %v", i+1, c.Type)
		}
	}
	return nil
}
