package main

import (
	"fmt"

	"github.com/agenthands/while/pkg/core/state"
	"github.com/agenthands/while/pkg/eval"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func evalCmd(e *env) *cobra.Command {
	var (
		expr      string
		boolean   bool
		bindings  string
		stateFile string
	)
	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate an expression against a variable state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.loadState(stateFile, bindings)
			if err != nil {
				return err
			}
			tokens, err := e.tokenize(expr, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			gas := e.conf.VM.Gas
			if boolean {
				b, err := e.parser.ReduceBoolean(tokens)
				if err != nil {
					return err
				}
				res, err := eval.Boolean(b, st, gas)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res)
				return nil
			}

			a, err := e.parser.ReduceArithmetic(tokens)
			if err != nil {
				return err
			}
			res, err := eval.Arithmetic(a, st, gas)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res)
			return nil
		},
	}
	addInputFlag(cmd, &expr)
	cmd.Flags().BoolVar(&boolean, "bool", false, "evaluate as a boolean expression")
	cmd.Flags().StringVar(&bindings, "state", "", `variable bindings, e.g. "x := 3; y := -2"`)
	cmd.Flags().StringVar(&stateFile, "state-file", "", "YAML file of variable bindings")
	return cmd
}

// loadState reads the state file, then applies inline bindings on top.
func (e *env) loadState(file, bindings string) (state.State, error) {
	st := state.State{}
	if file != "" {
		data, err := e.sandbox.ReadFile(file)
		if err != nil {
			return nil, err
		}
		fromFile, err := state.LoadYAML(data)
		if err != nil {
			return nil, err
		}
		st.Merge(fromFile)
	}
	if bindings != "" {
		inline, err := state.Parse(bindings)
		if err != nil {
			return nil, err
		}
		st.Merge(inline)
	}
	e.logger.Debug("state loaded", zap.Strings("names", st.Names()))
	return st, nil
}
