package main

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags([]string{"scroll.ardent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.path != "scroll.ardent" {
		t.Fatalf("expected path %q, got %q", "scroll.ardent", f.path)
	}
	if f.backend != BackendType {
		t.Fatalf("expected default backend %q, got %q", BackendType, f.backend)
	}
}

func TestParseFlagsBackendOverride(t *testing.T) {
	f, err := parseFlags([]string{"--backend", "vm", "--stats", "--trace", "scroll.ardent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.backend != "vm" || !f.stats || !f.trace {
		t.Fatalf("unexpected flags: %+v", f)
	}
}

func TestParseFlagsRejectsMissingScroll(t *testing.T) {
	if _, err := parseFlags(nil); err == nil {
		t.Fatalf("expected an error when no scroll path is given")
	}
}

func TestParseFlagsRejectsDanglingBackendValue(t *testing.T) {
	if _, err := parseFlags([]string{"--backend"}); err == nil {
		t.Fatalf("expected an error for --backend with no value")
	}
}

func TestColorizePassthroughWhenDisabled(t *testing.T) {
	if got := colorize("Error: boom", false); got != "Error: boom" {
		t.Fatalf("expected no coloring, got %q", got)
	}
}

func TestColorizeWrapsErrorsInRed(t *testing.T) {
	got := colorize("Error: boom", true)
	if got == "Error: boom" {
		t.Fatalf("expected ANSI wrapping when color is enabled")
	}
}
