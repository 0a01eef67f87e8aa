// Package runner wires the lexer, parser, checker, interpreter, and VM into
// the single exported facade of §6: runSource(source, sourceName, mode).
// It also implements the path-resolver-backed module loader the
// interpreter consumes for "From the scroll of"/"Unfurl the scroll", in the
// shape of the teacher's pkg/cli (evaluateModule, BackendType) and
// internal/modules.Loader (the Processing in-progress map that guards
// against circular imports).
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/checker"
	"github.com/Emir2099/Ardent-sub000/internal/config"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/interpreter"
	"github.com/Emir2099/Ardent-sub000/internal/lexer"
	"github.com/Emir2099/Ardent-sub000/internal/natives"
	"github.com/Emir2099/Ardent-sub000/internal/parser"
	"github.com/Emir2099/Ardent-sub000/internal/vm"
)

// PathResolver is the external collaborator of §6: resolve(logicalName) ->
// {path, found}. The interpreter never assumes a specific file-system
// layout; it only sees this callable through ModuleLoader.
type PathResolver interface {
	Resolve(logicalName string) (path string, found bool)
}

// FileResolver resolves a logical scroll name against the filesystem,
// trying each recognized source extension in turn (mirrors the teacher's
// isSourceFile/utils.ResolveImportPath pairing).
type FileResolver struct{}

func (FileResolver) Resolve(logicalName string) (string, bool) {
	if config.HasSourceExt(logicalName) {
		if _, err := os.Stat(logicalName); err == nil {
			return logicalName, true
		}
		return "", false
	}
	for _, ext := range config.SourceFileExtensions {
		candidate := logicalName + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// ModuleLoader implements interpreter.ModuleLoader, parsing and caching
// scrolls resolved through a PathResolver. Processing guards against
// circular imports exactly as the teacher's modules.Loader does, raising a
// curse containing "folds upon itself" (§4.6) instead of recursing forever.
type ModuleLoader struct {
	Resolver   PathResolver
	Diags      *diagnostics.Bag
	cache      map[string]*ast.Program
	processing map[string]bool
}

// NewModuleLoader returns a loader backed by resolver, recording parse
// diagnostics into diags.
func NewModuleLoader(resolver PathResolver, diags *diagnostics.Bag) *ModuleLoader {
	return &ModuleLoader{
		Resolver:   resolver,
		Diags:      diags,
		cache:      map[string]*ast.Program{},
		processing: map[string]bool{},
	}
}

func (l *ModuleLoader) Load(logicalName string) (*ast.Program, error) {
	path, found := l.Resolver.Resolve(logicalName)
	if !found {
		return nil, fmt.Errorf("no scroll resolves to %q", logicalName)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := l.cache[absPath]; ok {
		return cached, nil
	}
	if l.processing[absPath] {
		return nil, fmt.Errorf("the scroll %q folds upon itself (while loading %s, id=%s)", logicalName, path, uuid.NewString())
	}
	l.processing[absPath] = true
	defer delete(l.processing, absPath)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	toks := lexer.New(string(src)).All()
	p := parser.New(toks, l.Diags)
	prog := p.ParseProgram()
	if l.Diags.HasErrors() {
		return nil, fmt.Errorf("%q failed to parse", path)
	}
	l.cache[absPath] = prog
	return prog, nil
}

// Mode selects the execution backend, mirroring the teacher's BackendType.
type Mode string

const (
	ModeInterpret Mode = config.BackendInterpret
	ModeVM        Mode = config.BackendVM
)

// Options configures one RunSource call.
type Options struct {
	SourceName  string
	Mode        Mode
	Strict      bool // runs the checker in ModeStrict (AOT) before execution
	QuietAssign bool
	Stdout      io.Writer
	Resolver    PathResolver // defaults to FileResolver{} if nil

	// OnArenaStats, if set, receives the interpreter's arena usage once
	// Run completes (only called on the interpret backend: the bytecode
	// VM has no arena to report, per its scalar-only value model).
	OnArenaStats func(arena.Stats)

	// OnChunk, if set, receives the compiled chunk before it runs (only
	// called on the vm backend), for --trace-style disassembly dumps.
	OnChunk func(*vm.Chunk)
}

// RunSource is the single exported facade of §6: it lexes, parses,
// type-checks, and then executes source on the selected backend, appending
// every diagnostic to diags. A non-nil returned error mirrors a failing
// process exit status (§7 "uncaught curse ... failing exit status").
func RunSource(source string, opts Options, diags *diagnostics.Bag) error {
	toks := lexer.New(source).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		return fmt.Errorf("%s failed to parse", opts.SourceName)
	}

	mode := checker.ModeInterpret
	if opts.Strict {
		mode = checker.ModeStrict
	}
	chk := checker.New(diags, mode)
	if !chk.Check(prog) {
		return fmt.Errorf("%s failed to type-check", opts.SourceName)
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = FileResolver{}
	}

	switch opts.Mode {
	case ModeVM, "":
		if opts.Mode == "" {
			opts.Mode = Mode(config.DefaultBackend)
		}
		if opts.Mode == ModeVM {
			return runVM(prog, opts)
		}
		fallthrough
	case ModeInterpret:
		return runInterpret(prog, opts, diags, resolver)
	default:
		return fmt.Errorf("unknown backend %q", opts.Mode)
	}
}

func runInterpret(prog *ast.Program, opts Options, diags *diagnostics.Bag, resolver PathResolver) error {
	reg := natives.NewRegistry()
	loader := NewModuleLoader(resolver, diags)
	in := interpreter.New(reg, loader, opts.Stdout, diags)
	in.QuietAssign = opts.QuietAssign
	err := in.Run(prog)
	if opts.OnArenaStats != nil {
		opts.OnArenaStats(in.Arena.Stats())
	}
	return err
}

func runVM(prog *ast.Program, opts Options) error {
	chunk, err := vm.NewCompiler().Compile(prog)
	if err != nil {
		return fmt.Errorf("bytecode backend: %w", err)
	}
	if opts.OnChunk != nil {
		opts.OnChunk(chunk)
	}
	machine := vm.New()
	machine.Natives = natives.VMFuncs()
	if opts.Stdout != nil {
		machine.Stdout = func(s string) { fmt.Fprintln(opts.Stdout, s) }
	}
	return machine.Run(chunk)
}
