package vm

// Instructions are encoded as (op << 24) | arg, with arg limited to 24 bits.
const (
	OP_HALT   uint8 = 0x00
	OP_NOOP   uint8 = 0x01
	OP_PUSH_C uint8 = 0x02
	OP_PUSH_L uint8 = 0x03
	OP_ADD    uint8 = 0x10
	OP_SUB    uint8 = 0x11
	OP_MUL    uint8 = 0x12
	OP_NEG    uint8 = 0x13
	OP_EQ     uint8 = 0x20
	OP_LT     uint8 = 0x21
	OP_LTE    uint8 = 0x22
	OP_GT     uint8 = 0x23
	OP_GTE    uint8 = 0x24
	OP_AND    uint8 = 0x30
	OP_OR     uint8 = 0x31
)

// MaxArg is the largest operand an instruction can carry.
const MaxArg = 0x00FFFFFF

// Encode packs op and arg into one instruction.
func Encode(op uint8, arg uint32) uint32 {
	return (uint32(op) << 24) | (arg & MaxArg)
}

// Decode splits an instruction into op and arg.
func Decode(instr uint32) (uint8, uint32) {
	return uint8(instr >> 24), instr & MaxArg
}

var opNames = map[uint8]string{
	OP_HALT:   "HALT",
	OP_NOOP:   "NOOP",
	OP_PUSH_C: "PUSH_C",
	OP_PUSH_L: "PUSH_L",
	OP_ADD:    "ADD",
	OP_SUB:    "SUB",
	OP_MUL:    "MUL",
	OP_NEG:    "NEG",
	OP_EQ:     "EQ",
	OP_LT:     "LT",
	OP_LTE:    "LTE",
	OP_GT:     "GT",
	OP_GTE:    "GTE",
	OP_AND:    "AND",
	OP_OR:     "OR",
}

// OpName returns the mnemonic of op, or "?" for an unknown opcode.
func OpName(op uint8) string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "?"
}
