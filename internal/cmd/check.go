package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Report problems in a program without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline(cmd.OutOrStdout(), cmd.InOrStdin())
		defer p.Context.Diagnostics.EmitAllToWriter(cmd.ErrOrStderr())

		file, err := RunFrontendPhase(p, args[0])
		if err != nil {
			if _, usage := err.(*ExitError); usage {
				return err
			}
			return errFailed
		}

		RunCheckPhases(p.Context)

		if p.Context.Diagnostics.WarningCount() == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", describeFile(file))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
