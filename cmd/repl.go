package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("prompt") {
			config.Prompt = replPrompt
		}
		env, err := newEnv(config)
		if err != nil {
			fmt.Fprintln(os.Stderr, lisp.ErrorString(err))
			os.Exit(1)
		}
		var opts []repl.Option
		if config.HistoryFile != "" {
			opts = append(opts, repl.WithHistoryFile(config.HistoryFile))
		}
		err = repl.RunRepl(env, config.Prompt, opts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", "diylisp> ",
		"Prompt displayed when reading input")
}
