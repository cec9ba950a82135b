package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline(cmd.OutOrStdout(), cmd.InOrStdin())
		defer p.Context.Diagnostics.EmitAllToWriter(cmd.ErrOrStderr())

		file, err := p.Load(args[0])
		if err != nil {
			return usageError(err)
		}
		if err := p.Lex(file); err != nil {
			return errFailed
		}

		out := cmd.OutOrStdout()
		for _, tok := range file.Tokens {
			fmt.Fprintln(out, tok.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
