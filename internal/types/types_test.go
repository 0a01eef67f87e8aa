package types_test

import (
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/types"
)

func TestParseRuneSimpleTypes(t *testing.T) {
	cases := map[string]types.Kind{
		"whole":  types.Whole,
		"Truth":  types.Truth,
		"PHRASE": types.Phrase,
		"void":   types.Void,
		"any":    types.Any,
	}
	for rune, want := range cases {
		got, ok := types.ParseRune(rune)
		if !ok {
			t.Fatalf("ParseRune(%q) failed to parse", rune)
		}
		if got.Kind != want {
			t.Errorf("ParseRune(%q) = %s, want %s", rune, got.Kind, want)
		}
	}
}

func TestParseRuneOrderAndTome(t *testing.T) {
	order, ok := types.ParseRune("order[whole]")
	if !ok || order.Kind != types.Order || order.Elem().Kind != types.Whole {
		t.Fatalf("ParseRune(order[whole]) = %+v, ok=%v", order, ok)
	}

	tome, ok := types.ParseRune("tome[phrase,whole]")
	if !ok || tome.Kind != types.Tome || tome.Key().Kind != types.Phrase || tome.Value().Kind != types.Whole {
		t.Fatalf("ParseRune(tome[phrase,whole]) = %+v, ok=%v", tome, ok)
	}

	bareOrder, ok := types.ParseRune("order")
	if !ok || bareOrder.Elem().Kind != types.Unknown {
		t.Fatalf("ParseRune(order) = %+v, ok=%v", bareOrder, ok)
	}
}

func TestParseRuneNestedOrder(t *testing.T) {
	nested, ok := types.ParseRune("order[order[whole]]")
	if !ok {
		t.Fatalf("expected nested order to parse")
	}
	if nested.Elem().Kind != types.Order || nested.Elem().Elem().Kind != types.Whole {
		t.Fatalf("expected order[order[whole]], got %s", nested)
	}
}

func TestParseRuneRejectsGarbage(t *testing.T) {
	if _, ok := types.ParseRune("not-a-rune"); ok {
		t.Fatalf("expected ParseRune to reject an unrecognized rune")
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	order := types.NewOrder(types.Simple(types.Whole))
	if order.String() != "Order[whole]" {
		t.Errorf("expected %q, got %q", "Order[whole]", order.String())
	}
	tome := types.NewTome(types.Simple(types.Phrase), types.Simple(types.Truth))
	if tome.String() != "Tome[phrase,truth]" {
		t.Errorf("expected %q, got %q", "Tome[phrase,truth]", tome.String())
	}
}

func TestAssignableFromUnknownAndAny(t *testing.T) {
	if !types.AssignableFrom(types.Simple(types.Whole), types.Simple(types.Unknown)) {
		t.Errorf("expected Unknown to be assignable to any target")
	}
	if !types.AssignableFrom(types.Simple(types.Any), types.Simple(types.Phrase)) {
		t.Errorf("expected any value to be assignable to Any")
	}
	if types.AssignableFrom(types.Simple(types.Whole), types.Simple(types.Phrase)) {
		t.Errorf("expected Whole not to accept a Phrase")
	}
}

func TestAssignableFromOrderElementWise(t *testing.T) {
	wholeOrder := types.NewOrder(types.Simple(types.Whole))
	phraseOrder := types.NewOrder(types.Simple(types.Phrase))
	if types.AssignableFrom(wholeOrder, phraseOrder) {
		t.Errorf("expected Order[whole] not to accept Order[phrase]")
	}
	unknownOrder := types.NewOrder(types.Simple(types.Unknown))
	if !types.AssignableFrom(wholeOrder, unknownOrder) {
		t.Errorf("expected Order[whole] to accept an order of unknown element type")
	}
}

func TestUnifySimpleKinds(t *testing.T) {
	u, ok := types.Unify(types.Simple(types.Whole), types.Simple(types.Whole))
	if !ok || u.Kind != types.Whole {
		t.Fatalf("expected Whole/Whole to unify to Whole, got %+v ok=%v", u, ok)
	}
	if _, ok := types.Unify(types.Simple(types.Whole), types.Simple(types.Phrase)); ok {
		t.Errorf("expected Whole/Phrase not to unify")
	}
}

func TestUnifyWithUnknownWidens(t *testing.T) {
	u, ok := types.Unify(types.Simple(types.Unknown), types.Simple(types.Phrase))
	if !ok || u.Kind != types.Phrase {
		t.Fatalf("expected Unknown/Phrase to unify to Phrase, got %+v ok=%v", u, ok)
	}
}

func TestUnifyAllFoldsAcrossSlice(t *testing.T) {
	got := types.UnifyAll([]types.Type{types.Simple(types.Unknown), types.Simple(types.Whole), types.Simple(types.Whole)})
	if got.Kind != types.Whole {
		t.Errorf("expected UnifyAll to settle on Whole, got %s", got)
	}
	mixed := types.UnifyAll([]types.Type{types.Simple(types.Whole), types.Simple(types.Phrase)})
	if mixed.Kind != types.Any {
		t.Errorf("expected UnifyAll to fall back to Any on conflict, got %s", mixed)
	}
}
