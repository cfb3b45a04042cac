package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file ...]",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		env, err := newEnv(config)
		if err != nil {
			fmt.Fprintln(os.Stderr, lisp.ErrorString(err))
			os.Exit(1)
		}
		for _, src := range sources {
			err := runSource(env, src.name, bytes.NewReader(src.text), cmd.OutOrStdout())
			if err != nil {
				printError(env, err)
				os.Exit(1)
			}
		}
	},
}

type runSourceText struct {
	name string
	text []byte
}

func runReadSources(args []string) ([]runSourceText, error) {
	sources := make([]runSourceText, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSourceText{
				name: fmt.Sprintf("<expr %d>", i+1),
				text: []byte(args[i]),
			}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = runSourceText{name: path, text: b}
	}
	return sources, nil
}

// runSource evaluates the expressions read from r in order.  When runPrint is
// set each value is written to w.
func runSource(env *lisp.LEnv, name string, r io.Reader, w io.Writer) error {
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return err
		}
		if runPrint {
			fmt.Fprintln(w, v)
		}
	}
	return nil
}

func printError(env *lisp.LEnv, err error) {
	stderr := env.Runtime.Stderr
	fmt.Fprintln(stderr, lisp.ErrorString(err))
	if stack := lisp.ErrorStack(err); stack != nil && stack.Height() > 0 {
		stack.DebugPrint(stderr)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
