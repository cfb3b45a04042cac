package lisp

// Literal tokens for boolean values.
const (
	TrueToken  = "#t"
	FalseToken = "#f"
)

// Symbols with special meaning to the evaluator.
const (
	SymQuote  = "quote"
	SymAtom   = "atom"
	SymEq     = "eq"
	SymIf     = "if"
	SymDefine = "define"
	SymLambda = "lambda"
	SymDefn   = "defn"
	SymCond   = "cond"
	SymLet    = "let"
	SymCons   = "cons"
	SymHead   = "head"
	SymTail   = "tail"
	SymEmpty  = "empty"
)
