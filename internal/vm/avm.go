package vm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// avmMagic is the four-byte header identifying a ".avm" bytecode file
// (§4.7: "Magic A V M 1").
var avmMagic = [4]byte{'A', 'V', 'M', '1'}

const (
	avmConstInt32  byte = 0
	avmConstPhrase byte = 1
	avmConstTruth  byte = 2
)

// Encode serializes chunk to the ".avm" wire format: magic, u16 constant
// count, each constant as a type tag plus payload, u32 code size, code
// bytes. There is no format slot for NativeNames; see Chunk.NativeNames.
func Encode(chunk *Chunk) ([]byte, error) {
	if len(chunk.Constants) > 0xFFFF {
		return nil, fmt.Errorf("chunk has %d constants, more than a u16 can index", len(chunk.Constants))
	}
	buf := new(bytes.Buffer)
	buf.Write(avmMagic[:])

	binary.Write(buf, binary.BigEndian, uint16(len(chunk.Constants)))
	for _, cst := range chunk.Constants {
		switch cst.Kind {
		case KindWhole:
			buf.WriteByte(avmConstInt32)
			binary.Write(buf, binary.BigEndian, cst.Num)
		case KindPhrase:
			buf.WriteByte(avmConstPhrase)
			data := []byte(cst.Phrase)
			binary.Write(buf, binary.BigEndian, uint32(len(data)))
			buf.Write(data)
		case KindTruth:
			buf.WriteByte(avmConstTruth)
			if cst.Bool {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		default:
			return nil, fmt.Errorf("constant %d has no ].avm encoding", cst.Kind)
		}
	}

	binary.Write(buf, binary.BigEndian, uint32(len(chunk.Code)))
	buf.Write(chunk.Code)
	return buf.Bytes(), nil
}

// Decode parses data produced by Encode. Any magic mismatch or truncation
// yields a load error, per §4.7.
func Decode(data []byte) (*Chunk, error) {
	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != avmMagic {
		return nil, fmt.Errorf("not a valid .avm file: bad magic")
	}

	var constCount uint16
	if err := binary.Read(r, binary.BigEndian, &constCount); err != nil {
		return nil, fmt.Errorf("truncated .avm file: %w", err)
	}

	chunk := NewChunk()
	for i := 0; i < int(constCount); i++ {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("truncated .avm file reading constant %d: %w", i, err)
		}
		switch tag {
		case avmConstInt32:
			var n int32
			if err := binary.Read(r, binary.BigEndian, &n); err != nil {
				return nil, fmt.Errorf("truncated .avm file reading constant %d: %w", i, err)
			}
			chunk.Constants = append(chunk.Constants, wholeValue(n))
		case avmConstPhrase:
			var size uint32
			if err := binary.Read(r, binary.BigEndian, &size); err != nil {
				return nil, fmt.Errorf("truncated .avm file reading constant %d: %w", i, err)
			}
			data := make([]byte, size)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("truncated .avm file reading constant %d: %w", i, err)
			}
			chunk.Constants = append(chunk.Constants, phraseValue(string(data)))
		case avmConstTruth:
			b, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("truncated .avm file reading constant %d: %w", i, err)
			}
			chunk.Constants = append(chunk.Constants, truthValue(b != 0))
		default:
			return nil, fmt.Errorf("unknown constant type tag 0x%02X at constant %d", tag, i)
		}
	}

	var codeSize uint32
	if err := binary.Read(r, binary.BigEndian, &codeSize); err != nil {
		return nil, fmt.Errorf("truncated .avm file: %w", err)
	}
	code := make([]byte, codeSize)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, fmt.Errorf("truncated .avm file: code section shorter than declared %d bytes", codeSize)
	}
	chunk.Code = code
	chunk.Lines = make([]int, len(code))
	return chunk, nil
}
