package interpreter

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
)

// NativeFunc implements a library function. It receives the live
// interpreter, the library's state and the unevaluated argument
// expressions of the call on the given line.
type NativeFunc func(itp *Interpreter, state State, args []ast.Expr, line int) (Value, error)

// State is the private state of one imported library. The set of states is
// closed; natives recover their concrete state with a type switch.
type State interface {
	libraryState()
}

// NerdState backs the nerd library.
type NerdState struct {
	Calls int64
	Rand  *rand.Rand
}

// ClockState backs the clock library.
type ClockState struct {
	Start time.Time
	Now   func() time.Time
	Sleep func(time.Duration)
}

func (*NerdState) libraryState()  {}
func (*ClockState) libraryState() {}

// Library is an imported native library.
type Library struct {
	Name      string
	Version   *semver.Version
	Functions map[string]NativeFunc

	state State
	busy  bool
}

// NewLibrary creates a library. version must be a valid semantic version.
func NewLibrary(name, version string, state State, functions map[string]NativeFunc) (*Library, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("library %s: invalid version %q: %w", name, version, err)
	}
	return &Library{Name: name, Version: v, Functions: functions, state: state}, nil
}

// take removes the state from the library for the duration of one call.
func (l *Library) take(line int) (State, error) {
	if l.busy {
		return nil, errors.General(errors.PhaseRuntime, line, "library %s re-entered", l.Name)
	}
	l.busy = true
	state := l.state
	l.state = nil
	return state, nil
}

func (l *Library) restore(state State) {
	l.state = state
	l.busy = false
}

// LibraryOptions parameterize library construction.
type LibraryOptions struct {
	// Seed makes random libraries deterministic; zero means seed from the clock.
	Seed int64
}

// Constructor creates a fresh library instance on every import.
type Constructor func(opts LibraryOptions) (*Library, error)

// Registry maps library names to their constructors.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[name] = ctor
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	ctor, ok := r.constructors[name]
	return ctor, ok
}

// Names returns the registered library names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckArity fails with ArgumentMismatch unless exactly expected arguments
// were passed.
func CheckArity(args []ast.Expr, expected, line int) error {
	if len(args) != expected {
		return errors.ArgumentMismatch(expected, len(args), line)
	}
	return nil
}

// ExprToNumber evaluates expr and requires an Integer.
func (itp *Interpreter) ExprToNumber(expr ast.Expr) (int64, error) {
	v, err := itp.Evaluate(expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Integer)
	if !ok {
		return 0, errors.TypeMismatch("Integer", v.TypeName(), expr.GetLine())
	}
	return int64(n), nil
}

// ExprToString evaluates expr and requires a String.
func (itp *Interpreter) ExprToString(expr ast.Expr) (string, error) {
	v, err := itp.Evaluate(expr)
	if err != nil {
		return "", err
	}
	s, ok := v.(String)
	if !ok {
		return "", errors.TypeMismatch("String", v.TypeName(), expr.GetLine())
	}
	return string(s), nil
}

// importLibrary constructs the named library and installs it, replacing any
// earlier import of the same name. The library table is untouched on failure.
func (itp *Interpreter) importLibrary(name string, line int) error {
	ctor, ok := itp.registry.Lookup(name)
	if !ok {
		return errors.General(errors.PhaseRuntime, line, "unknown library: %s", name)
	}

	lib, err := ctor(itp.libraryOptions)
	if err != nil {
		return errors.General(errors.PhaseRuntime, line, "%v", err)
	}

	if constraint, ok := itp.constraints[name]; ok && !constraint.Check(lib.Version) {
		return errors.General(errors.PhaseRuntime, line,
			"library %s %s does not satisfy constraint %s", name, lib.Version, constraint)
	}

	itp.libraries[name] = lib
	itp.logger.Debug("imported library %s v%s", name, lib.Version)
	return nil
}

// ImportedLibraries returns the names of imported libraries in sorted order.
func (itp *Interpreter) ImportedLibraries() []string {
	names := make([]string, 0, len(itp.libraries))
	for name := range itp.libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
