// Package eval compiles expression trees and runs them on a pooled
// machine.
package eval

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/emitter"
	"github.com/agenthands/while/pkg/core/state"
	"github.com/agenthands/while/pkg/vm"
	"github.com/pkg/errors"
)

// DefaultGas is the instruction budget used when none is configured.
const DefaultGas = 1000000

// Arithmetic evaluates expr against st within gas instructions.
func Arithmetic(expr ast.Arithmetic, st state.State, gas int) (int64, error) {
	bc, err := emitter.EmitArithmetic(expr)
	if err != nil {
		return 0, err
	}
	v, err := vm.Execute(bc, st, gas)
	if err != nil {
		return 0, errors.WithMessagef(err, "evaluating %s", expr)
	}
	return v.Int(), nil
}

// Boolean evaluates expr against st within gas instructions.
func Boolean(expr ast.Boolean, st state.State, gas int) (bool, error) {
	bc, err := emitter.EmitBoolean(expr)
	if err != nil {
		return false, err
	}
	v, err := vm.Execute(bc, st, gas)
	if err != nil {
		return false, errors.WithMessagef(err, "evaluating %s", expr)
	}
	return v.Bool(), nil
}
