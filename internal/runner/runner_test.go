package runner_test

import (
	"os"
	"strings"
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/runner"
)

func run(t *testing.T, src string, opts runner.Options) (string, *diagnostics.Bag, error) {
	t.Helper()
	var out strings.Builder
	opts.Stdout = &out
	diags := &diagnostics.Bag{}
	err := runner.RunSource(src, opts, diags)
	return out.String(), diags, err
}

func TestRunSourceInterpretsPrint(t *testing.T) {
	src := `Let it be proclaimed: "hello, scroll"`
	out, diags, err := run(t, src, runner.Options{SourceName: "t.ardent", Mode: runner.ModeInterpret})
	if err != nil {
		t.Fatalf("unexpected error: %v (diags: %v)", err, diags.Items())
	}
	if !strings.Contains(out, "hello, scroll") {
		t.Fatalf("expected output to contain the proclaimed phrase, got %q", out)
	}
}

func TestRunSourceVMBackendArithmetic(t *testing.T) {
	src := `Let it be known x is of 2 + 3
Let it be proclaimed: x`
	out, diags, err := run(t, src, runner.Options{SourceName: "t.ardent", Mode: runner.ModeVM})
	if err != nil {
		t.Fatalf("unexpected error: %v (diags: %v)", err, diags.Items())
	}
	if !strings.Contains(out, "5") {
		t.Fatalf("expected output to contain 5, got %q", out)
	}
}

func TestRunSourceSyntaxErrorReturnsError(t *testing.T) {
	src := `Let it be known`
	_, diags, err := run(t, src, runner.Options{SourceName: "t.ardent", Mode: runner.ModeInterpret})
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !diags.HasErrors() {
		t.Fatalf("expected diagnostics to record errors")
	}
}

type stubResolver struct{ paths map[string]string }

func (s stubResolver) Resolve(name string) (string, bool) {
	p, ok := s.paths[name]
	return p, ok
}

func TestModuleLoaderReloadOfSameScrollIsNotACycle(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/helper.ardent"
	if err := os.WriteFile(path, []byte(`Let it be proclaimed: "hi"`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	diags := &diagnostics.Bag{}
	resolver := stubResolver{paths: map[string]string{"helper": path}}
	loader := runner.NewModuleLoader(resolver, diags)

	if _, err := loader.Load("helper"); err != nil {
		t.Fatalf("first load: unexpected error: %v", err)
	}
	if _, err := loader.Load("helper"); err != nil {
		t.Fatalf("second (cached) load: unexpected error: %v", err)
	}
}

func TestModuleLoaderMissingScroll(t *testing.T) {
	diags := &diagnostics.Bag{}
	resolver := stubResolver{paths: map[string]string{}}
	loader := runner.NewModuleLoader(resolver, diags)
	_, err := loader.Load("nowhere")
	if err == nil {
		t.Fatalf("expected an error for an unresolved scroll")
	}
}
