package vm

import (
	"fmt"
	"strings"

	"github.com/agenthands/while/pkg/core/value"
)

// Bytecode represents the compiled output of one expression.
type Bytecode struct {
	Instructions []uint32
	Constants    []value.Value
	// Locals names the variable loaded by PUSH_L i at index i.
	Locals []string
	// Result is the type the expression leaves on the stack.
	Result value.Type
}

// Disassemble renders one instruction per line.
func (bc *Bytecode) Disassemble() string {
	var b strings.Builder
	for ip, instr := range bc.Instructions {
		op, arg := Decode(instr)
		fmt.Fprintf(&b, "%04d %s", ip, OpName(op))
		switch op {
		case OP_PUSH_C:
			if int(arg) < len(bc.Constants) {
				fmt.Fprintf(&b, " %d (%s)", arg, bc.Constants[arg].Format())
			}
		case OP_PUSH_L:
			if int(arg) < len(bc.Locals) {
				fmt.Fprintf(&b, " %d (%s)", arg, bc.Locals[arg])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
