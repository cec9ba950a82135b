package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"anuraglang/internal/colors"
	"anuraglang/internal/config"

	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1 // the program failed to lex, parse or run
	ExitUsage   = 2 // bad arguments, unreadable file or bad config
)

var (
	cfgFile string
	debug   bool
	noColor bool

	// loaded by the root command before any subcommand runs
	cfg    *config.Config
	logger *slog.Logger
)

// ExitError carries a process exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

var errFailed = &ExitError{Code: ExitFailure}

var rootCmd = &cobra.Command{
	Use:   "anurag [file.ang]",
	Short: "AnuragLang interpreter",
	Long: `anurag runs programs written in AnuragLang, a small imperative language
with integers, strings, arrays, functions and console input/output.

Running "anurag FILE" is the same as "anurag run FILE".`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runFile(cmd, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log interpreter activity at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// resetFlags restores flag variables so the command tree can run more than once
func resetFlags() {
	cfgFile, debug, noColor = "", false, false
	astFormat = "yaml"
	cfg, logger = nil, nil
}

// setup loads the configuration and builds the logger
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Resolve(cfgFile)
	if err != nil {
		return usageError(err)
	}
	if debug {
		loaded.Log.Level = "debug"
	}
	if noColor {
		loaded.Output.Color = false
	}

	l, err := newLogger(cmd.ErrOrStderr(), loaded.Log)
	if err != nil {
		return usageError(err)
	}

	cfg = loaded
	logger = l
	colors.SetEnabled(cfg.Output.Color)

	logger.Debug("configuration loaded", "path", cfg.Path, "level", cfg.Log.Level)
	return nil
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command line with explicit arguments and streams
func ExecuteArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	resetFlags()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			printError(stderr, exitErr.Err)
		}
		return exitErr.Code
	}

	// cobra's own argument and flag errors
	printError(stderr, err)
	return ExitUsage
}

func printError(w io.Writer, err error) {
	colors.BOLD_RED.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}
