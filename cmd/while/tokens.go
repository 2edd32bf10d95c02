package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func tokensCmd(e *env) *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := e.tokenize(expr, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Offset, tok)
			}
			return nil
		},
	}
	addInputFlag(cmd, &expr)
	return cmd
}
