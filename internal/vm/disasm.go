package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk's instruction stream as text, one line per
// instruction, for the "ardent --trace" / bytecode-dump diagnostics named
// in SPEC_FULL.md Part D. It requires no new wire format: it simply walks
// the same opcode table the VM decodes.
func Disassemble(chunk *Chunk) string {
	var b strings.Builder
	ip := 0
	for ip < len(chunk.Code) {
		ip = disassembleInstruction(&b, chunk, ip)
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, chunk *Chunk, ip int) int {
	op := Opcode(chunk.Code[ip])
	fmt.Fprintf(b, "%04d %-14s", ip, op)
	next := ip + 1

	switch op {
	case OP_PUSH_CONST:
		idx := readU16(chunk.Code, next)
		if int(idx) < len(chunk.Constants) {
			fmt.Fprintf(b, "%d  ; %s", idx, chunk.Constants[idx].Display())
		} else {
			fmt.Fprintf(b, "%d", idx)
		}
		next += 2
	case OP_LOAD, OP_STORE:
		idx := readU16(chunk.Code, next)
		fmt.Fprintf(b, "%d", idx)
		next += 2
	case OP_JMP, OP_JMP_IF_FALSE:
		rel := readI16(chunk.Code, next)
		fmt.Fprintf(b, "%+d  ; -> %04d", rel, next+2+int(rel))
		next += 2
	case OP_MAKE_ORDER, OP_MAKE_TOME:
		n := readU16(chunk.Code, next)
		fmt.Fprintf(b, "%d", n)
		next += 2
	case OP_NATIVE:
		nid := readU16(chunk.Code, next)
		next += 2
		argc := chunk.Code[next]
		next++
		name := fmt.Sprintf("#%d", nid)
		if int(nid) < len(chunk.NativeNames) {
			name = chunk.NativeNames[nid]
		}
		fmt.Fprintf(b, "%s argc=%d", name, argc)
	case OP_CALL:
		fid := readU16(chunk.Code, next)
		next += 2
		argc := chunk.Code[next]
		next++
		fmt.Fprintf(b, "%d argc=%d", fid, argc)
	}
	b.WriteByte('\n')
	return next
}
