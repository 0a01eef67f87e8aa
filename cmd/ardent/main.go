// Command ardent is the scroll runner: it reads a source file, runs it on
// the selected backend, and reports diagnostics to stderr. Flag handling
// and the colorized-diagnostic / --dump-prologue / --stats conveniences
// follow the shape of the teacher's cmd/funxy/main.go (BackendType var,
// os.Args-driven flag scanning) and its isatty-gated terminal coloring
// (internal/evaluator/builtins_term.go) and yaml-backed config dumping
// (internal/ext/config.go).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
	"github.com/Emir2099/Ardent-sub000/internal/config"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/lexer"
	"github.com/Emir2099/Ardent-sub000/internal/parser"
	"github.com/Emir2099/Ardent-sub000/internal/runner"
	"github.com/Emir2099/Ardent-sub000/internal/vm"
)

// BackendType selects the default execution backend; settable at build
// time with -ldflags "-X main.BackendType=vm", mirroring the teacher's
// own build-time-settable var of the same name.
var BackendType = config.BackendInterpret

type cliFlags struct {
	path         string
	backend      string
	quietAssign  bool
	strict       bool
	stats        bool
	trace        bool
	dumpPrologue bool
	noColor      bool
}

func parseFlags(args []string) (cliFlags, error) {
	f := cliFlags{backend: BackendType, quietAssign: config.QuietAssignDefault}
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--backend":
			if i+1 >= len(args) {
				return f, fmt.Errorf("--backend requires a value (interpret|vm)")
			}
			i++
			f.backend = args[i]
		case "--quiet-assign":
			f.quietAssign = true
		case "--no-quiet-assign":
			f.quietAssign = false
		case "--strict":
			f.strict = true
		case "--stats":
			f.stats = true
		case "--trace":
			f.trace = true
		case "--dump-prologue":
			f.dumpPrologue = true
		case "--no-color":
			f.noColor = true
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) != 1 {
		return f, fmt.Errorf("usage: ardent [flags] <scroll.ardent>")
	}
	f.path = positional[0]
	return f, nil
}

// colorize wraps diagnostic text in an ANSI severity color when stderr is
// a real terminal, following the teacher's isatty.IsTerminal gate.
func colorize(s string, useColor bool) string {
	if !useColor {
		return s
	}
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		reset  = "\x1b[0m"
	)
	color := yellow
	if strings.HasPrefix(s, "Error:") || strings.HasPrefix(s, "TypeError:") {
		color = red
	}
	return color + s + reset
}

func writeDiagnostics(diags *diagnostics.Bag, useColor bool) {
	for _, d := range diags.Items() {
		fmt.Fprintln(os.Stderr, colorize(d.String(), useColor))
	}
}

func dumpPrologue(path string, src []byte) error {
	toks := lexer.New(string(src)).All()
	diags := &diagnostics.Bag{}
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if prog.Prologue == nil {
		fmt.Fprintln(os.Stdout, "# (no prologue)")
		return nil
	}
	out, err := yaml.Marshal(prog.Prologue)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}

func run() int {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	src, err := os.ReadFile(flags.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read scroll %q: %v\n", flags.path, err)
		return 1
	}

	if flags.dumpPrologue {
		if err := dumpPrologue(flags.path, src); err != nil {
			fmt.Fprintf(os.Stderr, "could not dump prologue: %v\n", err)
			return 1
		}
		return 0
	}

	useColor := !flags.noColor && isatty.IsTerminal(os.Stderr.Fd())

	diags := &diagnostics.Bag{}
	opts := runner.Options{
		SourceName:  flags.path,
		Mode:        runner.Mode(flags.backend),
		Strict:      flags.strict,
		QuietAssign: flags.quietAssign,
		Stdout:      os.Stdout,
	}
	if flags.stats {
		opts.OnArenaStats = func(s arena.Stats) {
			fmt.Fprintf(os.Stderr, "arena: %s\n", s)
		}
	}
	if flags.trace {
		opts.OnChunk = func(c *vm.Chunk) {
			fmt.Fprintln(os.Stderr, vm.Disassemble(c))
		}
	}

	runErr := runner.RunSource(string(src), opts, diags)
	writeDiagnostics(diags, useColor)

	if diags.HasErrors() {
		return 1
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, colorize("Error: "+runErr.Error(), useColor))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
