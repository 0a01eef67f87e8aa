package arena_test

import (
	"strings"
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
)

func TestNewPhraseShortRoundTrip(t *testing.T) {
	a := arena.New()
	p := a.NewPhrase("hello")
	if p.String() != "hello" {
		t.Errorf("expected %q, got %q", "hello", p.String())
	}
	if p.Len() != 5 {
		t.Errorf("expected length 5, got %d", p.Len())
	}
}

func TestNewPhraseLongRoundTrip(t *testing.T) {
	a := arena.New()
	long := strings.Repeat("x", 100)
	p := a.NewPhrase(long)
	if p.String() != long {
		t.Errorf("long phrase round trip mismatch")
	}
	if p.Len() != 100 {
		t.Errorf("expected length 100, got %d", p.Len())
	}
}

func TestConcatProducesCombinedPhrase(t *testing.T) {
	a := arena.New()
	left := a.NewPhrase("hello ")
	right := a.NewPhrase("world")
	combined := a.Concat(left, right)
	if combined.String() != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", combined.String())
	}
}

func TestPushPopFrameRewindsAllocations(t *testing.T) {
	a := arena.New()
	a.NewPhrase("before")
	frame := a.PushFrame()
	a.NewPhrase(strings.Repeat("y", 10000)) // forces a fresh block
	statsBefore := a.Stats()
	a.PopFrame(frame)
	statsAfter := a.Stats()
	if statsAfter.Blocks >= statsBefore.Blocks && statsAfter.Used >= statsBefore.Used {
		t.Errorf("expected PopFrame to reclaim allocations: before=%+v after=%+v", statsBefore, statsAfter)
	}
}

func TestStatsReportsUsage(t *testing.T) {
	a := arena.New()
	before := a.Stats()
	a.NewPhrase(strings.Repeat("z", 50))
	after := a.Stats()
	if after.Used <= before.Used {
		t.Errorf("expected Used to grow after an allocation, before=%d after=%d", before.Used, after.Used)
	}
	if after.String() == "" {
		t.Errorf("expected a non-empty Stats string")
	}
}

func TestAllocGrowsBlockOnOverflow(t *testing.T) {
	a := arena.New()
	a.Alloc(1<<20, 1) // far larger than the initial block, forces growth
	after := a.Stats()
	if after.Blocks < 2 {
		t.Errorf("expected a large allocation to add a block, got %d blocks", after.Blocks)
	}
}
