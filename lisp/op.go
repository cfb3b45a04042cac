package lisp

// Special operators receive their arguments unevaluated.
var langSpecialOps = []*langBuiltin{
	{SymQuote, Formals("expr"), opQuote},
	{SymAtom, Formals("expr"), opAtom},
	{SymEq, Formals("a", "b"), opEq},
	{SymIf, Formals("condition", "then", "else"), opIf},
	{SymDefine, Formals("name", "expr"), opDefine},
	{SymLambda, Formals("formals", "expr"), opLambda},
	{SymDefn, Formals("name", "formals", "expr"), opDefn},
	{SymCond, Formals("branches"), opCond},
	{SymLet, Formals("bindings", "expr"), opLet},
	{SymCons, Formals("head", "tail"), opCons},
	{SymHead, Formals("seq"), opHead},
	{SymTail, Formals("seq"), opTail},
	{SymEmpty, Formals("seq"), opEmpty},
}

var specialOpTable map[string]*langBuiltin

func init() {
	specialOpTable = builtinTable(langSpecialOps)
}

// DefaultSpecialOps returns the special operators recognized by the
// evaluator.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

func lookupSpecialOp(name string) *langBuiltin {
	return specialOpTable[name]
}

// (quote expr)
func opQuote(env *LEnv, args []*LVal) (*LVal, error) {
	return args[0].Copy(), nil
}

// (atom expr)
func opAtom(env *LEnv, args []*LVal) (*LVal, error) {
	v, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	return Bool(v.IsAtom()), nil
}

// (eq a b)
func opEq(env *LEnv, args []*LVal) (*LVal, error) {
	vals, err := env.evalCells(args)
	if err != nil {
		return nil, err
	}
	return Bool(vals[0].Equal(vals[1])), nil
}

// (if test-form then-form else-form)
func opIf(env *LEnv, args []*LVal) (*LVal, error) {
	r, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if r.IsTrue() {
		return env.Eval(args[1])
	}
	return env.Eval(args[2])
}

// (define name expr)
func opDefine(env *LEnv, args []*LVal) (*LVal, error) {
	name := args[0]
	if name.Type != LSymbol {
		return nil, env.typeErrorf(SymDefine, "first argument is not a symbol: %v", name.Type)
	}
	v, err := env.Eval(args[1])
	if err != nil {
		return nil, err
	}
	env.Put(name.Str, v)
	return v, nil
}

// (lambda (formals ...) expr)
func opLambda(env *LEnv, args []*LVal) (*LVal, error) {
	formals, body := args[0], args[1]
	if formals.Type != LSExpr {
		return nil, env.typeErrorf(SymLambda, "first argument is not a list: %v", formals.Type)
	}
	for _, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return nil, env.typeErrorf(SymLambda, "first argument contains a non-symbol: %v", sym.Type)
		}
	}
	// The closure keeps a reference to env, which gives it lexical scope.
	return Lambda(formals, body, env), nil
}

// (defn name (formals ...) expr)
//
// Equivalent to (define name (lambda (formals ...) expr)).
func opDefn(env *LEnv, args []*LVal) (*LVal, error) {
	name := args[0]
	if name.Type != LSymbol {
		return nil, env.typeErrorf(SymDefn, "first argument is not a symbol: %v", name.Type)
	}
	fun, err := opLambda(env, args[1:])
	if err != nil {
		return nil, err
	}
	env.Put(name.Str, fun)
	return fun, nil
}

// (cond ((test-form then-form)*))
func opCond(env *LEnv, args []*LVal) (*LVal, error) {
	branches := args[0]
	if branches.Type != LSExpr {
		return nil, env.typeErrorf(SymCond, "argument is not a list: %v", branches.Type)
	}
	for _, branch := range branches.Cells {
		if branch.Type != LSExpr {
			return nil, env.typeErrorf(SymCond, "branch is not a list: %v", branch.Type)
		}
		if len(branch.Cells) != 2 {
			return nil, env.typeErrorf(SymCond, "branch is not a pair (length %d)", len(branch.Cells))
		}
		test, err := env.Eval(branch.Cells[0])
		if err != nil {
			return nil, err
		}
		if test.IsTrue() {
			return env.Eval(branch.Cells[1])
		}
	}
	return Bool(false), nil
}

// (let ((name expr)*) body)
//
// Bindings are evaluated in order, each in a scope which already contains the
// preceding bindings.
func opLet(env *LEnv, args []*LVal) (*LVal, error) {
	bindlist := args[0]
	if bindlist.Type != LSExpr {
		return nil, env.typeErrorf(SymLet, "first argument is not a list: %v", bindlist.Type)
	}
	letenv := env.Extend()
	for _, bind := range bindlist.Cells {
		if bind.Type != LSExpr || len(bind.Cells) != 2 {
			return nil, env.typeErrorf(SymLet, "first argument is not a list of pairs")
		}
		if bind.Cells[0].Type != LSymbol {
			return nil, env.typeErrorf(SymLet, "binding name is not a symbol: %v", bind.Cells[0].Type)
		}
		val, err := letenv.Eval(bind.Cells[1])
		if err != nil {
			return nil, err
		}
		letenv.Put(bind.Cells[0].Str, val)
	}
	return letenv.Eval(args[1])
}

// (cons head tail)
func opCons(env *LEnv, args []*LVal) (*LVal, error) {
	vals, err := env.evalCells(args)
	if err != nil {
		return nil, err
	}
	head, tail := vals[0], vals[1]
	switch tail.Type {
	case LSExpr:
		cells := make([]*LVal, 0, len(tail.Cells)+1)
		cells = append(cells, head)
		cells = append(cells, tail.Cells...)
		return SExpr(cells), nil
	case LString:
		if head.Type != LString {
			return nil, env.typeErrorf(SymCons, "first argument is not a string: %v", head.Type)
		}
		if head.Len() != 1 {
			return nil, env.domainErrorf(SymCons, "first argument is not a single character: %v", head)
		}
		return String(head.Str + tail.Str), nil
	default:
		return nil, env.typeErrorf(SymCons, "second argument is not a list or string: %v", tail.Type)
	}
}

// (head seq)
func opHead(env *LEnv, args []*LVal) (*LVal, error) {
	seq, err := env.evalSeq(SymHead, args[0])
	if err != nil {
		return nil, err
	}
	if seq.Type == LString {
		return String(seq.Str[:charLen(seq.Str)]), nil
	}
	return seq.Cells[0], nil
}

// (tail seq)
func opTail(env *LEnv, args []*LVal) (*LVal, error) {
	seq, err := env.evalSeq(SymTail, args[0])
	if err != nil {
		return nil, err
	}
	if seq.Type == LString {
		return String(seq.Str[charLen(seq.Str):]), nil
	}
	cells := make([]*LVal, len(seq.Cells)-1)
	copy(cells, seq.Cells[1:])
	return SExpr(cells), nil
}

// (empty seq)
func opEmpty(env *LEnv, args []*LVal) (*LVal, error) {
	v, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	switch v.Type {
	case LSExpr, LString:
		return Bool(v.Len() == 0), nil
	default:
		return Bool(false), nil
	}
}

// evalSeq evaluates expr and ensures the result is a non-empty list or
// string.
func (env *LEnv) evalSeq(op string, expr *LVal) (*LVal, error) {
	seq, err := env.Eval(expr)
	if err != nil {
		return nil, err
	}
	if seq.Type != LSExpr && seq.Type != LString {
		return nil, env.typeErrorf(op, "argument is not a list or string: %v", seq.Type)
	}
	if seq.Len() == 0 {
		return nil, env.domainErrorf(op, "argument is empty")
	}
	return seq, nil
}
