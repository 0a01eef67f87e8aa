package interpreter

import (
	"strconv"
	"strings"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

// Value is a tagged runtime value (§3): exactly one of the fields below is
// meaningful, selected by Kind. Phrase values are arena-interned so string
// concatenation goes through the arena's short-string optimization (§4.1)
// instead of the Go heap.
type Value struct {
	Kind  types.Kind
	Num   int64
	Bool  bool
	Str   arena.Phrase
	Order *Order
	Tome  *Tome
}

// Order is a runtime order (array): a 0-indexed, mutable sequence held in
// a plain Go slice. Mutation is only ever reached through the collection rites
// (§4.3 Immutability) — no language-level index assignment exists.
type Order struct {
	Elems []Value
}

// Tome is a runtime tome (map): phrase-keyed, insertion-ordered so that
// iteration and printed form are deterministic.
type Tome struct {
	keys []string
	vals map[string]Value
}

// NewTome returns an empty tome.
func NewTome() *Tome { return &Tome{vals: map[string]Value{}} }

// Get looks up key, reporting whether it is present.
func (t *Tome) Get(key string) (Value, bool) {
	v, ok := t.vals[key]
	return v, ok
}

// Set inserts or overwrites key, tracking first-insertion order.
func (t *Tome) Set(key string, v Value) {
	if _, ok := t.vals[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.vals[key] = v
}

// Delete removes key if present.
func (t *Tome) Delete(key string) {
	if _, ok := t.vals[key]; !ok {
		return
	}
	delete(t.vals, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the tome's keys in insertion order.
func (t *Tome) Keys() []string { return t.keys }

// Len reports the number of entries.
func (t *Tome) Len() int { return len(t.keys) }

func wholeValue(n int64) Value  { return Value{Kind: types.Whole, Num: n} }
func truthValue(b bool) Value   { return Value{Kind: types.Truth, Bool: b} }
func voidValue() Value          { return Value{Kind: types.Void} }
func orderValue(o *Order) Value { return Value{Kind: types.Order, Order: o} }
func tomeValue(m *Tome) Value   { return Value{Kind: types.Tome, Tome: m} }

// Truthy reports whether v counts as true in a condition position: truth
// values by their own sense, whole by non-zero, phrase by non-empty,
// collections by non-empty.
func (v Value) Truthy() bool {
	switch v.Kind {
	case types.Truth:
		return v.Bool
	case types.Whole:
		return v.Num != 0
	case types.Phrase:
		return v.Str.Len() > 0
	case types.Order:
		return v.Order != nil && len(v.Order.Elems) > 0
	case types.Tome:
		return v.Tome != nil && v.Tome.Len() > 0
	default:
		return false
	}
}

// Display renders v the way "Let it be proclaimed:" prints it (§4.6).
func (v Value) Display() string {
	switch v.Kind {
	case types.Whole:
		return strconv.FormatInt(v.Num, 10)
	case types.Truth:
		if v.Bool {
			return "True"
		}
		return "False"
	case types.Phrase:
		return v.Str.String()
	case types.Order:
		parts := make([]string, len(v.Order.Elems))
		for i, e := range v.Order.Elems {
			parts[i] = e.Display()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case types.Tome:
		parts := make([]string, 0, v.Tome.Len())
		for _, k := range v.Tome.Keys() {
			val, _ := v.Tome.Get(k)
			parts = append(parts, k+": "+val.Display())
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return "void"
	}
}
