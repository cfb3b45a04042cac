// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/parser"
	"github.com/chzyer/readline"
)

// Option customizes the readline instance used by RunRepl.
type Option func(*readline.Config)

// WithHistoryFile persists input history in the file at path.
func WithHistoryFile(path string) Option {
	return func(c *readline.Config) {
		c.HistoryFile = path
	}
}

// WithStdin reads input from r instead of the terminal.
func WithStdin(r io.ReadCloser) Option {
	return func(c *readline.Config) {
		c.Stdin = r
	}
}

// WithStdout writes results to w.
func WithStdout(w io.Writer) Option {
	return func(c *readline.Config) {
		c.Stdout = w
	}
}

// WithStderr writes diagnostics to w.
func WithStderr(w io.Writer) Option {
	return func(c *readline.Config) {
		c.Stderr = w
	}
}

// RunRepl runs a simple repl in env until input is exhausted.  Input lines
// are accumulated until they contain complete expressions.  Errors are
// reported and the loop continues.  An interrupt discards pending input.
func RunRepl(env *lisp.LEnv, prompt string, opts ...Option) error {
	config := &readline.Config{Prompt: prompt}
	for _, opt := range opts {
		opt(config)
	}
	rl, err := readline.NewEx(config)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	s := newSession(env, rl.Stdout(), rl.Stderr())
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			s.reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if s.readLine(line) {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

type session struct {
	env    *lisp.LEnv
	stdout io.Writer
	stderr io.Writer
	buf    []string
}

func newSession(env *lisp.LEnv, stdout, stderr io.Writer) *session {
	return &session{
		env:    env,
		stdout: stdout,
		stderr: stderr,
	}
}

func (s *session) reset() {
	s.buf = nil
}

// readLine adds line to the pending input and evaluates the input if it is
// complete.  The return value is true if more input is needed.
func (s *session) readLine(line string) bool {
	s.buf = append(s.buf, line)
	src := strings.Join(s.buf, "\n")
	exprs, err := parser.ParseProgram(src)
	if err != nil {
		var perr *lisp.ParseError
		if errors.As(err, &perr) && perr.Incomplete {
			return true
		}
		s.reset()
		s.errln(err)
		return false
	}
	s.reset()
	for _, expr := range exprs {
		v, err := s.env.Eval(expr)
		if err != nil {
			s.errln(err)
			return false
		}
		fmt.Fprintln(s.stdout, v)
	}
	return false
}

func (s *session) errln(err error) {
	fmt.Fprintln(s.stderr, lisp.ErrorString(err))
}
