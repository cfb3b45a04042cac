package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/diylisp/lisp"
	"github.com/bmatsuo/diylisp/lisp/lisplib"
	"github.com/bmatsuo/diylisp/parser"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	rootStdlib   string
	rootNoStdlib bool
	rootMaxStack int
	rootTrace    bool

	config = DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diylisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter with integers, booleans, strings, lists and
lexically scoped closures.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyRootFlags(cmd, config)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default $HOME/"+DefaultConfigName+")")
	rootCmd.PersistentFlags().StringVar(&rootStdlib, "stdlib", "",
		"Load the bootstrap library from a file instead of the built-in library")
	rootCmd.PersistentFlags().BoolVar(&rootNoStdlib, "no-stdlib", false,
		"Start with an empty global environment")
	rootCmd.PersistentFlags().IntVar(&rootMaxStack, "max-stack", 0,
		"Maximum function call depth (0 means unlimited)")
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log function calls to stderr")
}

// applyRootFlags overrides config with the persistent flags that were set on
// the command line.
func applyRootFlags(cmd *cobra.Command, config *Config) {
	flags := cmd.Flags()
	if flags.Changed("stdlib") {
		config.Stdlib = rootStdlib
	}
	if flags.Changed("no-stdlib") {
		config.NoStdlib = rootNoStdlib
	}
	if flags.Changed("max-stack") {
		config.MaxStack = rootMaxStack
	}
	if flags.Changed("trace") {
		config.Trace = rootTrace
	}
}

// newEnv returns a root environment configured by config with the bootstrap
// library loaded.
func newEnv(config *Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	opts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(os.Stderr),
		lisp.WithMaximumStackHeight(config.MaxStack),
	}
	if config.Trace {
		opts = append(opts, lisp.WithTrace(os.Stderr))
	}
	err := lisp.InitializeUserEnv(env, opts...)
	if err != nil {
		return nil, err
	}
	switch {
	case config.NoStdlib:
	case config.Stdlib != "":
		err = lisplib.LoadFile(env, config.Stdlib)
	default:
		err = lisplib.LoadLibrary(env)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return env, nil
}
