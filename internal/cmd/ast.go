package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var astFormat string

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch astFormat {
		case "yaml", "json":
		default:
			return usageError(fmt.Errorf("unknown format %q: want yaml or json", astFormat))
		}

		p := newPipeline(cmd.OutOrStdout(), cmd.InOrStdin())
		defer p.Context.Diagnostics.EmitAllToWriter(cmd.ErrOrStderr())

		file, err := RunFrontendPhase(p, args[0])
		if err != nil {
			if _, usage := err.(*ExitError); usage {
				return err
			}
			return errFailed
		}

		return file.AST.SaveAST(cmd.OutOrStdout(), astFormat)
	},
}

func init() {
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(astCmd)
}
