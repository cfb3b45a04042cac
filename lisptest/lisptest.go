// Package lisptest runs lisp expressions and lisp source files as Go tests.
package lisptest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/lisp/lisplib"
	"github.com/bmatsuo/diylisp/parser"
)

// TestPrefix identifies the functions in a test file that RunTestFile will
// call.
const TestPrefix = "test-"

// DefaultMaxHeight bounds recursion in test environments so that a runaway
// test fails instead of exhausting the Go stack.
const DefaultMaxHeight = 10000

// Runner is a test runner.
type Runner struct {
	// Loader is the library loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader func(*lisp.LEnv) error
}

// NoLibrary is a Runner.Loader that leaves the root environment empty.
func NoLibrary(*lisp.LEnv) error {
	return nil
}

func (r *Runner) NewEnv() (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	err := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaximumStackHeight(DefaultMaxHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	err = loader(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return env, nil
}

// RunTestFile loads the lisp source file at path and calls each function
// defined by the file whose name begins with TestPrefix.  Every test runs in
// its own environment and passes when it returns #t.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		env, err := r.loadTestFile(path, source)
		if err != nil {
			t.Error(err.Error())
			return
		}
		names = testNames(env)
		if len(names) == 0 {
			t.Errorf("no tests defined")
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// Every test runs even when a previous test failed.
		name := names[i]
		t.Run(name, func(t *testing.T) {
			env, err := r.loadTestFile(path, source)
			if err != nil {
				t.Error(err.Error())
				return
			}
			v, err := env.Eval(lisp.SExpr([]*lisp.LVal{lisp.Symbol(name)}))
			if err != nil {
				t.Error(lisp.ErrorString(err))
				if stack := lisp.ErrorStack(err); stack != nil {
					var buf bytes.Buffer
					stack.DebugPrint(&buf)
					t.Error(buf.String())
				}
				return
			}
			if !v.IsTrue() {
				t.Errorf("%s: returned %v", name, v)
			}
		})
	}
}

func (r *Runner) loadTestFile(path string, source []byte) (*lisp.LEnv, error) {
	env, err := r.NewEnv()
	if err != nil {
		return nil, err
	}
	_, err = env.Load(filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%s", lisp.ErrorString(err))
	}
	return env, nil
}

func testNames(env *lisp.LEnv) []string {
	var names []string
	for name, v := range env.Scope {
		if strings.HasPrefix(name, TestPrefix) && v.Type == lisp.LFun && len(v.Formals.Cells) == 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.  When evaluation fails the expected Result is
// the error formatted by lisp.ErrorString.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs with the
// standard library loaded.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env, err := r.NewEnv()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			v, err := parser.Parse(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			var result string
			ret, err := env.Eval(v)
			if err != nil {
				result = lisp.ErrorString(err)
			} else {
				result = ret.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
