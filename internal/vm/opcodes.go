// Package vm implements the bytecode compiler and stack machine of §4.7: a
// fixed-width instruction set over a single operand stack, a per-chunk
// constant pool, and the "A V M 1" bytecode file format.
package vm

// Opcode is a single one-byte VM instruction. Values are pinned by the wire
// format, not reassigned by iota, so a ".avm" file compiled today still
// disassembles correctly tomorrow.
type Opcode byte

const (
	OP_NOP Opcode = 0x00

	OP_PUSH_CONST Opcode = 0x01 // u16 idx
	OP_POP        Opcode = 0x02

	OP_LOAD  Opcode = 0x10 // u16 slot
	OP_STORE Opcode = 0x11 // u16 slot

	OP_ADD Opcode = 0x20
	OP_SUB Opcode = 0x21
	OP_MUL Opcode = 0x22
	OP_DIV Opcode = 0x23

	OP_AND Opcode = 0x24
	OP_OR  Opcode = 0x25
	OP_NOT Opcode = 0x26

	// Comparisons occupy their own small block, as spec allows.
	OP_EQ  Opcode = 0x28
	OP_NE  Opcode = 0x29
	OP_GT  Opcode = 0x2A
	OP_LT  Opcode = 0x2B
	OP_GE  Opcode = 0x2C
	OP_LE  Opcode = 0x2D

	OP_JMP          Opcode = 0x30 // i16 rel
	OP_JMP_IF_FALSE Opcode = 0x31 // i16 rel

	OP_CALL Opcode = 0x40 // u16 fid, u8 argc
	OP_RET  Opcode = 0x41

	OP_MAKE_ORDER Opcode = 0x50 // u16 n
	OP_MAKE_TOME  Opcode = 0x51 // u16 n

	OP_NATIVE Opcode = 0x60 // u16 nid, u8 argc

	OP_PRINT Opcode = 0x70

	OP_HALT Opcode = 0xFF
)

// OpcodeNames supports Disassemble and --trace diagnostics.
var OpcodeNames = map[Opcode]string{
	OP_NOP:          "NOP",
	OP_PUSH_CONST:   "PUSH_CONST",
	OP_POP:          "POP",
	OP_LOAD:         "LOAD",
	OP_STORE:        "STORE",
	OP_ADD:          "ADD",
	OP_SUB:          "SUB",
	OP_MUL:          "MUL",
	OP_DIV:          "DIV",
	OP_AND:          "AND",
	OP_OR:           "OR",
	OP_NOT:          "NOT",
	OP_EQ:           "EQ",
	OP_NE:           "NE",
	OP_GT:           "GT",
	OP_LT:           "LT",
	OP_GE:           "GE",
	OP_LE:           "LE",
	OP_JMP:          "JMP",
	OP_JMP_IF_FALSE: "JMP_IF_FALSE",
	OP_CALL:         "CALL",
	OP_RET:          "RET",
	OP_MAKE_ORDER:   "MAKE_ORDER",
	OP_MAKE_TOME:    "MAKE_TOME",
	OP_NATIVE:       "NATIVE",
	OP_PRINT:        "PRINT",
	OP_HALT:         "HALT",
}

func (op Opcode) String() string {
	if name, ok := OpcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
