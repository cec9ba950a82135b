package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a program",
	Long: `Run lexes, parses and executes a program. Warnings from the static
checks are printed first unless [check] warnings is off. Program output goes
to stdout and take reads lines from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(cmd *cobra.Command, path string) error {
	p := newPipeline(cmd.OutOrStdout(), cmd.InOrStdin())
	return Run(p, path, cfg.Check.Warnings, cmd.ErrOrStderr())
}
