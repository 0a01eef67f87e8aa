// Package arena implements the bump allocator and interned-phrase storage
// specified in §3/§4.1: a sequence of growing byte blocks with O(1) frame
// push/pop, used to back the interpreter's collections and its REPL line
// lifecycle.
package arena

import "github.com/dustin/go-humanize"

const initialBlockSize = 4096

type block struct {
	data []byte
	used int
}

// Frame identifies a point in the arena's allocation history that PopFrame
// can rewind to.
type Frame struct {
	blockIndex int
	offset     int
}

// Arena is a bump allocator: sequential allocation within the current
// block, growing a fresh (doubled) block when the current one is
// exhausted. It never frees individual allocations; only PopFrame reclaims
// space, by discarding blocks wholesale.
type Arena struct {
	blocks []*block
}

// New returns an empty Arena with one initial block.
func New() *Arena {
	return &Arena{blocks: []*block{{data: make([]byte, initialBlockSize)}}}
}

func align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}

// Alloc returns a byte slice of length n within the current block, aligned
// to alignment. If the current block cannot satisfy the request it grows a
// fresh block sized max(n+alignment, 2*currentCapacity).
func (a *Arena) Alloc(n, alignment int) []byte {
	cur := a.blocks[len(a.blocks)-1]
	start := align(cur.used, alignment)
	if start+n > len(cur.data) {
		newCap := n + alignment
		if doubled := 2 * len(cur.data); doubled > newCap {
			newCap = doubled
		}
		cur = &block{data: make([]byte, newCap)}
		a.blocks = append(a.blocks, cur)
		start = align(0, alignment)
	}
	cur.used = start + n
	return cur.data[start:cur.used]
}

// PushFrame records the current allocation position.
func (a *Arena) PushFrame() Frame {
	cur := a.blocks[len(a.blocks)-1]
	return Frame{blockIndex: len(a.blocks) - 1, offset: cur.used}
}

// PopFrame discards every block allocated after f and rewinds the block
// that was current at f back to its recorded offset.
func (a *Arena) PopFrame(f Frame) {
	a.blocks = a.blocks[:f.blockIndex+1]
	a.blocks[f.blockIndex].used = f.offset
}

// Stats reports block count and bytes used/capacity, for the --stats CLI
// flag (SPEC_FULL.md Part D).
type Stats struct {
	Blocks   int
	Used     uint64
	Capacity uint64
}

func (s Stats) String() string {
	return humanize.Bytes(s.Used) + " / " + humanize.Bytes(s.Capacity) + " across " + humanize.Comma(int64(s.Blocks)) + " block(s)"
}

// Stats returns current usage statistics across all blocks.
func (a *Arena) Stats() Stats {
	s := Stats{Blocks: len(a.blocks)}
	for _, b := range a.blocks {
		s.Used += uint64(b.used)
		s.Capacity += uint64(len(b.data))
	}
	return s
}

const shortPhraseMax = 23

// Phrase is an interned, immutable string: short phrases (<=23 bytes) are
// stored inline; longer phrases point into the arena (§4.1).
type Phrase struct {
	short    [shortPhraseMax]byte
	shortLen int8
	long     []byte
	isLong   bool
}

// NewPhrase copies s into the arena (or inline storage if short).
func (a *Arena) NewPhrase(s string) Phrase {
	var p Phrase
	if len(s) <= shortPhraseMax {
		p.shortLen = int8(len(s))
		copy(p.short[:], s)
		return p
	}
	buf := a.Alloc(len(s), 1)
	copy(buf, s)
	p.isLong = true
	p.long = buf
	return p
}

// String returns the phrase's contents as a Go string.
func (p Phrase) String() string {
	if p.isLong {
		return string(p.long)
	}
	return string(p.short[:p.shortLen])
}

// Len returns the phrase's byte length.
func (p Phrase) Len() int {
	if p.isLong {
		return len(p.long)
	}
	return int(p.shortLen)
}

// Concat allocates a single new phrase of exactly a.Len()+b.Len() bytes
// holding the concatenation of a and b (§4.1 invariant).
func (ar *Arena) Concat(a, b Phrase) Phrase {
	return ar.NewPhrase(a.String() + b.String())
}
