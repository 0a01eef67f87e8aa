// Package natives implements the spirit registry of §6: the small set of
// host-registered native functions ("spirits") Ardent programs can invoke
// via "Invoke the spirit of NAME upon ARGS". It mirrors the teacher's
// builtin-registration pattern (internal/evaluator's map[string]*Builtin
// populated by RegisterBuiltins) with a map[string]*Spirit populated by
// RegisterCore, but scoped to the three spirits the test corpus expects:
// math.add, math.divide, system.len.
package natives

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Emir2099/Ardent-sub000/internal/interpreter"
	"github.com/Emir2099/Ardent-sub000/internal/types"
	"github.com/Emir2099/Ardent-sub000/internal/vm"
)

// Spirit is one host-registered native function, resolved by name.
type Spirit struct {
	Name string
	Fn   func(args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse)
}

// Registry is a name-keyed spirit table implementing interpreter.NativeResolver.
type Registry struct {
	spirits map[string]*Spirit
}

// NewRegistry returns a Registry with the core spirits already registered.
func NewRegistry() *Registry {
	r := &Registry{spirits: map[string]*Spirit{}}
	RegisterCore(r)
	return r
}

// Register adds or replaces a spirit by name.
func (r *Registry) Register(name string, fn func(args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse)) {
	r.spirits[name] = &Spirit{Name: name, Fn: fn}
}

// Invoke implements interpreter.NativeResolver.
func (r *Registry) Invoke(name string, args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse) {
	s, ok := r.spirits[name]
	if !ok {
		return interpreter.Value{}, &interpreter.Curse{Message: fmt.Sprintf("no spirit named %q is registered", name), Line: line}
	}
	return s.Fn(args, line)
}

// RegisterCore registers the spirits the test corpus expects (§6):
// math.add, math.divide, and system.len.
func RegisterCore(r *Registry) {
	r.Register("math.add", nativeMathAdd)
	r.Register("math.divide", nativeMathDivide)
	r.Register("system.len", nativeSystemLen)
}

func wantWhole(v interpreter.Value, which string, spirit string, line int) (int64, *interpreter.Curse) {
	if v.Kind != types.Whole {
		return 0, &interpreter.Curse{Message: fmt.Sprintf("spirit %q expects a whole for its %s argument", spirit, which), Line: line}
	}
	return v.Num, nil
}

func nativeMathAdd(args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse) {
	if len(args) != 2 {
		return interpreter.Value{}, &interpreter.Curse{Message: "spirit 'math.add' expects exactly two arguments", Line: line}
	}
	a, curse := wantWhole(args[0], "first", "math.add", line)
	if curse != nil {
		return interpreter.Value{}, curse
	}
	b, curse := wantWhole(args[1], "second", "math.add", line)
	if curse != nil {
		return interpreter.Value{}, curse
	}
	return interpreter.Value{Kind: types.Whole, Num: a + b}, nil
}

func nativeMathDivide(args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse) {
	if len(args) != 2 {
		return interpreter.Value{}, &interpreter.Curse{Message: "spirit 'math.divide' expects exactly two arguments", Line: line}
	}
	a, curse := wantWhole(args[0], "first", "math.divide", line)
	if curse != nil {
		return interpreter.Value{}, curse
	}
	b, curse := wantWhole(args[1], "second", "math.divide", line)
	if curse != nil {
		return interpreter.Value{}, curse
	}
	if b == 0 {
		return interpreter.Value{}, &interpreter.Curse{Message: "Division by zero in spirit 'math.divide'.", Line: line}
	}
	return interpreter.Value{Kind: types.Whole, Num: a / b}, nil
}

func nativeSystemLen(args []interpreter.Value, line int) (interpreter.Value, *interpreter.Curse) {
	if len(args) != 1 {
		return interpreter.Value{}, &interpreter.Curse{Message: "spirit 'system.len' expects exactly one argument", Line: line}
	}
	v := args[0]
	var n int
	switch v.Kind {
	case types.Order:
		n = len(v.Order.Elems)
	case types.Tome:
		n = v.Tome.Len()
	case types.Phrase:
		n = v.Str.Len()
	default:
		return interpreter.Value{}, &interpreter.Curse{Message: fmt.Sprintf("spirit 'system.len' is not defined for a value of type %s", v.Kind), Line: line}
	}
	return interpreter.Value{Kind: types.Whole, Num: int64(n)}, nil
}

// VMFuncs adapts math.add/math.divide to vm.NativeFunc for programs run on
// the bytecode backend. system.len is omitted: the VM's value model (§4.7)
// carries no Order/Tome, so there is nothing for it to measure except a
// phrase, and the corpus pins system.len's contract to collections.
func VMFuncs() map[string]vm.NativeFunc {
	return map[string]vm.NativeFunc{
		"math.add":    vmMathAdd,
		"math.divide": vmMathDivide,
	}
}

func vmWantWhole(v vm.Value, which, spirit string) (int32, error) {
	if v.Kind != vm.KindWhole {
		return 0, fmt.Errorf("spirit %q expects a whole for its %s argument", spirit, which)
	}
	return v.Num, nil
}

func vmMathAdd(args []vm.Value) (vm.Value, error) {
	if len(args) != 2 {
		return vm.Value{}, fmt.Errorf("spirit 'math.add' expects exactly two arguments")
	}
	a, err := vmWantWhole(args[0], "first", "math.add")
	if err != nil {
		return vm.Value{}, err
	}
	b, err := vmWantWhole(args[1], "second", "math.add")
	if err != nil {
		return vm.Value{}, err
	}
	return vm.Value{Kind: vm.KindWhole, Num: a + b}, nil
}

func vmMathDivide(args []vm.Value) (vm.Value, error) {
	if len(args) != 2 {
		return vm.Value{}, fmt.Errorf("spirit 'math.divide' expects exactly two arguments")
	}
	a, err := vmWantWhole(args[0], "first", "math.divide")
	if err != nil {
		return vm.Value{}, err
	}
	b, err := vmWantWhole(args[1], "second", "math.divide")
	if err != nil {
		return vm.Value{}, err
	}
	if b == 0 {
		return vm.Value{}, errors.New("Division by zero in spirit 'math.divide'.")
	}
	return vm.Value{Kind: vm.KindWhole, Num: a / b}, nil
}

// TaskID mints a spawn-style task identifier for the async collaborator
// stub named in §5/§6 (SPEC_FULL.md Part C), generalizing the teacher's
// module-cache UUID-tagging use of google/uuid into the natives package.
func TaskID() string { return uuid.NewString() }

var _ interpreter.NativeResolver = (*Registry)(nil)
