package lisp

import (
	"fmt"
	"io"
	"log"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  When the limit
// is reached the call fails with a DomainError instead of growing the Go
// stack without bound.  A value of zero removes the limit.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		if n < 0 {
			return fmt.Errorf("invalid maximum stack height: %d", n)
		}
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithTrace returns a Config that logs every function call, along with its
// arguments, to w.
func WithTrace(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Logger = log.New(w, "trace: ", 0)
		return nil
	}
}
