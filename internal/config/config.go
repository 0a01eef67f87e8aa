// Package config holds the small set of constants shared across Ardent's
// packages: version string, recognized source-file extensions, backend
// names, and the built-in spirit and pseudo-spell names. The runner and the
// CLI import it.
// Mirrors the shape of the teacher's internal/config package.
package config

// Version is the current Ardent version.
var Version = "0.1.0"

const SourceFileExt = ".ardent"

// SourceFileExtensions are all recognized scroll file extensions.
var SourceFileExtensions = []string{".ardent", ".ard"}

// TrimSourceExt removes any recognized source extension from name, or
// returns it unchanged if none matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Built-in bare-name pseudo-spell names (§4.5/§4.6): these bypass the
// user-defined spell registry in both the checker and the interpreter.
const (
	LenFuncName    = "len"
	CountFuncName  = "count"
	StrFuncName    = "str"
	PhraseFuncName = "phrase"
	EmptyFuncName  = "empty"
)

// Core spirit names the test corpus expects (§6).
const (
	MathAddSpiritName    = "math.add"
	MathDivideSpiritName = "math.divide"
	SystemLenSpiritName  = "system.len"
)

// QuietAssignDefault is the CLI default for --quiet-assign (§9 OQ1): the
// per-assignment "NAME is now VALUE" echo is suppressed unless disabled.
const QuietAssignDefault = true

// Backend names selectable via --backend.
const (
	BackendInterpret = "interpret"
	BackendVM        = "vm"
)

// DefaultBackend mirrors the teacher's BackendType build-time variable,
// settable at build time via -ldflags.
var DefaultBackend = BackendInterpret
