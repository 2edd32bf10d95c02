// Package emitter lowers expression trees to stack machine bytecode.
package emitter

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/core/value"
	"github.com/agenthands/while/pkg/vm"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedNode = errors.New("emitter: unsupported node")
	ErrTooLarge        = errors.New("emitter: operand index exceeds instruction range")
)

// Emitter accumulates the instructions of one expression. Operands are
// emitted before their operator, so the machine sees postfix order.
type Emitter struct {
	instructions []uint32
	constants    []value.Value
	locals       map[string]int
	names        []string
}

func NewEmitter() *Emitter {
	return &Emitter{
		locals: make(map[string]int),
	}
}

// EmitArithmetic compiles expr with a fresh Emitter.
func EmitArithmetic(expr ast.Arithmetic) (*vm.Bytecode, error) {
	return NewEmitter().EmitArithmetic(expr)
}

// EmitBoolean compiles expr with a fresh Emitter.
func EmitBoolean(expr ast.Boolean) (*vm.Bytecode, error) {
	return NewEmitter().EmitBoolean(expr)
}

func (e *Emitter) EmitArithmetic(expr ast.Arithmetic) (*vm.Bytecode, error) {
	e.reset()
	if err := e.emitArith(expr); err != nil {
		return nil, err
	}
	return e.finish(value.TypeInt)
}

func (e *Emitter) EmitBoolean(expr ast.Boolean) (*vm.Bytecode, error) {
	e.reset()
	if err := e.emitBool(expr); err != nil {
		return nil, err
	}
	return e.finish(value.TypeBool)
}

func (e *Emitter) reset() {
	e.instructions = nil
	e.constants = nil
	e.locals = make(map[string]int)
	e.names = nil
}

func (e *Emitter) finish(result value.Type) (*vm.Bytecode, error) {
	// Always end with HALT
	e.emitOp(vm.OP_HALT, 0)

	return &vm.Bytecode{
		Instructions: e.instructions,
		Constants:    e.constants,
		Locals:       e.names,
		Result:       result,
	}, nil
}

func (e *Emitter) emitArith(node ast.Arithmetic) error {
	switch n := node.(type) {
	case *ast.Numeral:
		idx := e.addConstant(value.IntValue(n.Value))
		return e.emitIndexed(vm.OP_PUSH_C, idx)

	case *ast.Variable:
		return e.emitIndexed(vm.OP_PUSH_L, e.getLocalIndex(n.Name))

	case *ast.Add:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_ADD)
	case *ast.Minus:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_SUB)
	case *ast.Product:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_MUL)

	case *ast.Uminus:
		if err := e.emitArith(n.Operand); err != nil {
			return err
		}
		e.emitOp(vm.OP_NEG, 0)
		return nil

	default:
		return errors.Wrapf(ErrUnsupportedNode, "arithmetic %T", node)
	}
}

func (e *Emitter) emitBool(node ast.Boolean) error {
	switch n := node.(type) {
	case *ast.BooleanLiteral:
		idx := e.addConstant(value.BoolValue(n.Value))
		return e.emitIndexed(vm.OP_PUSH_C, idx)

	case *ast.And:
		return e.emitBinaryBool(n.Left, n.Right, vm.OP_AND)
	case *ast.Or:
		return e.emitBinaryBool(n.Left, n.Right, vm.OP_OR)

	case *ast.Equal:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_EQ)
	case *ast.Less:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_LT)
	case *ast.LessEqual:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_LTE)
	case *ast.Great:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_GT)
	case *ast.GreatEqual:
		return e.emitBinaryArith(n.Left, n.Right, vm.OP_GTE)

	default:
		return errors.Wrapf(ErrUnsupportedNode, "boolean %T", node)
	}
}

func (e *Emitter) emitBinaryArith(left, right ast.Arithmetic, op uint8) error {
	if err := e.emitArith(left); err != nil {
		return err
	}
	if err := e.emitArith(right); err != nil {
		return err
	}
	e.emitOp(op, 0)
	return nil
}

func (e *Emitter) emitBinaryBool(left, right ast.Boolean, op uint8) error {
	if err := e.emitBool(left); err != nil {
		return err
	}
	if err := e.emitBool(right); err != nil {
		return err
	}
	e.emitOp(op, 0)
	return nil
}

func (e *Emitter) emitIndexed(op uint8, idx int) error {
	if idx > vm.MaxArg {
		return errors.Wrapf(ErrTooLarge, "%s %d", vm.OpName(op), idx)
	}
	e.emitOp(op, uint32(idx))
	return nil
}

func (e *Emitter) emitOp(op uint8, arg uint32) {
	e.instructions = append(e.instructions, vm.Encode(op, arg))
}

func (e *Emitter) addConstant(v value.Value) int {
	for i, c := range e.constants {
		if c.Type == v.Type && c.Data == v.Data {
			return i
		}
	}
	e.constants = append(e.constants, v)
	return len(e.constants) - 1
}

func (e *Emitter) getLocalIndex(name string) int {
	idx, ok := e.locals[name]
	if !ok {
		idx = len(e.names)
		e.locals[name] = idx
		e.names = append(e.names, name)
	}
	return idx
}
