package lisp

import (
	"io"
	"log"
	"os"
)

// Runtime is the state shared by every LEnv descended from a single root
// environment.
type Runtime struct {
	Reader Reader
	Stack  *CallStack
	Stderr io.Writer

	// Logger receives a line for every function call when it is non-nil.
	Logger *log.Logger
}

// StandardRuntime returns a new Runtime with an empty stack that writes
// debugging output to os.Stderr.  The returned Runtime has no Reader.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack:  &CallStack{},
		Stderr: os.Stderr,
	}
}

func (rt *Runtime) tracef(format string, v ...interface{}) {
	if rt.Logger == nil {
		return
	}
	rt.Logger.Printf(format, v...)
}
