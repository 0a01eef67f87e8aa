package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
)

func TestDiagnosticStringIncludesPrefixAndLine(t *testing.T) {
	d := diagnostics.Diagnostic{Severity: diagnostics.SeverityError, Line: 7, Message: "unexpected token"}
	got := d.String()
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("expected the rendered diagnostic to start with %q, got %q", "Error:", got)
	}
	if !strings.Contains(got, "line 7") {
		t.Errorf("expected the rendered diagnostic to mention the line, got %q", got)
	}
}

func TestDiagnosticStringOmitsLineWhenZero(t *testing.T) {
	d := diagnostics.Diagnostic{Severity: diagnostics.SeverityWarning, Message: "unused rune"}
	if strings.Contains(d.String(), "line") {
		t.Errorf("expected no line annotation for line 0, got %q", d.String())
	}
}

func TestDiagnosticStringIncludesHint(t *testing.T) {
	d := diagnostics.Diagnostic{Severity: diagnostics.SeverityType, Message: "mismatched rune", Hint: "cast it first"}
	got := d.String()
	if !strings.HasPrefix(got, "TypeError:") {
		t.Errorf("expected a TypeError: prefix, got %q", got)
	}
	if !strings.Contains(got, "hint: cast it first") {
		t.Errorf("expected the hint to be rendered, got %q", got)
	}
}

func TestBagErrorfAddsErrorSeverity(t *testing.T) {
	b := &diagnostics.Bag{}
	b.Errorf(3, "bad %s", "thing")
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors to be true after Errorf")
	}
	errs := b.Errors()
	if len(errs) != 1 || errs[0].Message != "bad thing" || errs[0].Line != 3 {
		t.Errorf("unexpected error diagnostic: %+v", errs)
	}
}

func TestBagWarnfDoesNotCountAsError(t *testing.T) {
	b := &diagnostics.Bag{}
	b.Warnf(1, "heads up")
	if b.HasErrors() {
		t.Fatalf("expected a warning alone not to count as an error")
	}
	if len(b.Warnings()) != 1 {
		t.Errorf("expected exactly one warning, got %d", len(b.Warnings()))
	}
}

func TestBagTypeErrorfCountsAsError(t *testing.T) {
	b := &diagnostics.Bag{}
	b.TypeErrorf(2, "expected whole, got phrase")
	if !b.HasErrors() {
		t.Fatalf("expected a type error to count toward HasErrors")
	}
}

func TestBagItemsPreservesInsertionOrder(t *testing.T) {
	b := &diagnostics.Bag{}
	b.Warnf(1, "first")
	b.Errorf(2, "second")
	b.TypeErrorf(3, "third")
	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Message != "first" || items[1].Message != "second" || items[2].Message != "third" {
		t.Errorf("expected insertion order to be preserved, got %+v", items)
	}
}

func TestBagWriteToRendersEveryDiagnostic(t *testing.T) {
	b := &diagnostics.Bag{}
	b.Errorf(1, "one")
	b.Warnf(2, "two")
	var out strings.Builder
	b.WriteTo(&out)
	rendered := out.String()
	if !strings.Contains(rendered, "one") || !strings.Contains(rendered, "two") {
		t.Errorf("expected both diagnostics to be rendered, got %q", rendered)
	}
	if strings.Count(rendered, "\n") != 2 {
		t.Errorf("expected one line per diagnostic, got %q", rendered)
	}
}
