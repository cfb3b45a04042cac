// Package lisplib loads the standard library into a diylisp environment.
// The library is written in lisp and embedded in the package.
package lisplib

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/parser"
)

// StdlibName is the source name reported in errors from the embedded
// library.
const StdlibName = "stdlib.diy"

//go:embed stdlib.diy
var stdlib string

// Source returns the source text of the embedded standard library.
func Source() string {
	return stdlib
}

// LoadLibrary evaluates the standard library in env.  If any part of the
// library fails to parse then nothing is evaluated.
func LoadLibrary(env *lisp.LEnv) error {
	return load(env, StdlibName, strings.NewReader(stdlib))
}

// LoadFile evaluates the bootstrap file at path in env, in place of or in
// addition to the standard library.
func LoadFile(env *lisp.LEnv, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return load(env, filepath.Base(path), f)
}

func load(env *lisp.LEnv, name string, r io.Reader) error {
	exprs, err := parser.NewReader().Read(name, r)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		_, err := env.Eval(expr)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
