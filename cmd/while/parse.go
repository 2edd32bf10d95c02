package main

import (
	"fmt"

	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/emitter"
	"github.com/agenthands/while/pkg/vm"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func parseCmd(e *env) *cobra.Command {
	var (
		expr    string
		boolean bool
		dump    bool
		asm     bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Reduce an expression and print its tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := e.tokenize(expr, args)
			if err != nil {
				return err
			}

			var (
				tree ast.Node
				bc   *vm.Bytecode
			)
			if boolean {
				b, err := e.parser.ReduceBoolean(tokens)
				if err != nil {
					return err
				}
				tree = b
				if asm {
					if bc, err = emitter.EmitBoolean(b); err != nil {
						return err
					}
				}
			} else {
				a, err := e.parser.ReduceArithmetic(tokens)
				if err != nil {
					return err
				}
				tree = a
				if asm {
					if bc, err = emitter.EmitArithmetic(a); err != nil {
						return err
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tree)
			if dump {
				dumper.Fdump(out, tree)
			}
			if bc != nil {
				fmt.Fprint(out, bc.Disassemble())
			}
			return nil
		},
	}
	addInputFlag(cmd, &expr)
	cmd.Flags().BoolVar(&boolean, "bool", false, "reduce as a boolean expression")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the tree structure")
	cmd.Flags().BoolVar(&asm, "asm", false, "print the compiled bytecode")
	return cmd
}
