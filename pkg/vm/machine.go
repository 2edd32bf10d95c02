package vm

import (
	"runtime"
	"sync"

	"github.com/agenthands/while/pkg/core/state"
	"github.com/agenthands/while/pkg/core/value"
	"github.com/pkg/errors"
)

var (
	ErrStackOverflow   = errors.New("vm: stack overflow")
	ErrStackUnderflow  = errors.New("vm: stack underflow")
	ErrGasExhausted    = errors.New("vm: gas exhausted")
	ErrUnboundVariable = errors.New("vm: unbound variable")
	ErrTypeMismatch    = errors.New("vm: type mismatch")
	ErrUnknownOpcode   = errors.New("vm: unknown opcode")
	ErrBadResult       = errors.New("vm: expression did not leave exactly one value")
)

// StackDepth bounds the operand stack. Operand depth grows only with
// right-nested groups, which the parser caps well below this.
const StackDepth = 512

// Machine evaluates one Bytecode at a time. It uses a fixed-size operand
// stack to keep a predictable memory footprint and is not safe for
// concurrent use.
type Machine struct {
	Stack [StackDepth]value.Value
	SP    int // Stack Pointer

	IP   int      // Instruction Pointer
	Code []uint32 // Bytecode instructions

	Constants []value.Value // Constant pool
	Locals    []value.Value // Variable slots, filled by Load
}

var machinePool = sync.Pool{
	New: func() interface{} { return &Machine{} },
}

// GetMachine returns a reset machine from the pool.
func GetMachine() *Machine {
	return machinePool.Get().(*Machine)
}

// PutMachine resets m and returns it to the pool.
func PutMachine(m *Machine) {
	m.Reset()
	machinePool.Put(m)
}

// Reset clears the machine state for reuse (sync.Pool compliant).
func (m *Machine) Reset() {
	m.SP = 0
	m.IP = 0
	m.Code = nil
	m.Constants = nil

	// Zero out the stack to avoid data leaking between runs
	for i := range m.Stack {
		m.Stack[i] = value.Value{}
	}
	m.Locals = m.Locals[:0]
}

// Load installs bc and resolves every local it names against st.
func (m *Machine) Load(bc *Bytecode, st state.State) error {
	m.Code = bc.Instructions
	m.Constants = bc.Constants
	m.IP = 0
	m.SP = 0

	m.Locals = m.Locals[:0]
	for _, name := range bc.Locals {
		v, ok := st.Lookup(name)
		if !ok {
			return errors.Wrapf(ErrUnboundVariable, "%q", name)
		}
		m.Locals = append(m.Locals, value.IntValue(v))
	}
	return nil
}

// Push adds a value to the stack. Panics on overflow.
func (m *Machine) Push(v value.Value) {
	if m.SP >= StackDepth {
		panic(ErrStackOverflow)
	}
	m.Stack[m.SP] = v
	m.SP++
}

// Pop removes and returns the top value from the stack. Panics on underflow.
func (m *Machine) Pop() value.Value {
	if m.SP <= 0 {
		panic(ErrStackUnderflow)
	}
	m.SP--
	return m.Stack[m.SP]
}

// Result returns the single value a finished run left on the stack.
func (m *Machine) Result() (value.Value, error) {
	if m.SP != 1 {
		return value.Value{}, errors.Wrapf(ErrBadResult, "stack holds %d values", m.SP)
	}
	return m.Stack[0], nil
}

// Run executes instructions until HALT, error, or gas exhaustion. Every
// instruction costs one unit of gas.
func (m *Machine) Run(gasLimit int) (err error) {
	// Safety net: convert internal stack panics to errors
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && (e == ErrStackOverflow || e == ErrStackUnderflow) {
				err = e
				return
			}

			// Constant or local index out of range
			if _, ok := r.(runtime.Error); ok {
				err = errors.Errorf("vm: bad operand at IP %d: %v", m.IP, r)
				return
			}

			panic(r)
		}
	}()

	for i := 0; i < gasLimit; i++ {
		if m.IP >= len(m.Code) {
			return errors.Errorf("vm: instruction pointer %d past end of code", m.IP)
		}
		op, arg := Decode(m.Code[m.IP])

		switch op {
		case OP_HALT:
			return nil

		case OP_NOOP:

		case OP_PUSH_C:
			m.Push(m.Constants[arg])

		case OP_PUSH_L:
			m.Push(m.Locals[arg])

		case OP_ADD, OP_SUB, OP_MUL:
			b, a, err := m.popInts(op)
			if err != nil {
				return err
			}
			var res int64
			switch op {
			case OP_ADD:
				res = a + b
			case OP_SUB:
				res = a - b
			default:
				res = a * b
			}
			m.Push(value.IntValue(res))

		case OP_NEG:
			v := m.Pop()
			if v.Type != value.TypeInt {
				return errors.Wrapf(ErrTypeMismatch, "NEG on %s at IP %d", v.Type, m.IP)
			}
			m.Push(value.IntValue(-v.Int()))

		case OP_EQ, OP_LT, OP_LTE, OP_GT, OP_GTE:
			b, a, err := m.popInts(op)
			if err != nil {
				return err
			}
			var res bool
			switch op {
			case OP_EQ:
				res = a == b
			case OP_LT:
				res = a < b
			case OP_LTE:
				res = a <= b
			case OP_GT:
				res = a > b
			default:
				res = a >= b
			}
			m.Push(value.BoolValue(res))

		case OP_AND, OP_OR:
			b := m.Pop()
			a := m.Pop()
			if a.Type != value.TypeBool || b.Type != value.TypeBool {
				return errors.Wrapf(ErrTypeMismatch, "%s on %s and %s at IP %d", OpName(op), a.Type, b.Type, m.IP)
			}
			if op == OP_AND {
				m.Push(value.BoolValue(a.Bool() && b.Bool()))
			} else {
				m.Push(value.BoolValue(a.Bool() || b.Bool()))
			}

		default:
			return errors.Wrapf(ErrUnknownOpcode, "0x%02x at IP %d", op, m.IP)
		}
		m.IP++
	}

	return ErrGasExhausted
}

func (m *Machine) popInts(op uint8) (b, a int64, err error) {
	bv := m.Pop()
	av := m.Pop()
	if av.Type != value.TypeInt || bv.Type != value.TypeInt {
		return 0, 0, errors.Wrapf(ErrTypeMismatch, "%s on %s and %s at IP %d", OpName(op), av.Type, bv.Type, m.IP)
	}
	return bv.Int(), av.Int(), nil
}

// Execute runs bc against st on a pooled machine and returns the value it
// leaves on the stack.
func Execute(bc *Bytecode, st state.State, gas int) (value.Value, error) {
	m := GetMachine()
	defer PutMachine(m)

	if err := m.Load(bc, st); err != nil {
		return value.Value{}, err
	}
	if err := m.Run(gas); err != nil {
		return value.Value{}, err
	}
	v, err := m.Result()
	if err != nil {
		return value.Value{}, err
	}
	if bc.Result != value.TypeVoid && v.Type != bc.Result {
		return value.Value{}, errors.Wrapf(ErrTypeMismatch, "result is %s, want %s", v.Type, bc.Result)
	}
	return v, nil
}
