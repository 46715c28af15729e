// Package interpreter implements the cookable tree-walking evaluator.
package interpreter

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
)

// Logger receives debug output about imports and native dispatch.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Interpreter executes statements against one global environment.
type Interpreter struct {
	env       Environment
	libraries map[string]*Library

	registry       *Registry
	constraints    map[string]*semver.Constraints
	libraryOptions LibraryOptions

	stdout io.Writer
	stdin  *bufio.Reader
	logger Logger

	// done is closed when the run is cancelled; nil means never.
	done <-chan struct{}

	// self holds the receiver of each active call; free functions push nil.
	self []*Instance
}

// MaxCallDepth bounds nested function, method and constructor calls.
const MaxCallDepth = 10000

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout sets where yap writes.
func WithStdout(w io.Writer) Option {
	return func(itp *Interpreter) { itp.stdout = w }
}

// WithStdin sets where yapask reads.
func WithStdin(r io.Reader) Option {
	return func(itp *Interpreter) { itp.stdin = bufio.NewReader(r) }
}

// WithRegistry sets the libraries available to gyatt.
func WithRegistry(r *Registry) Option {
	return func(itp *Interpreter) { itp.registry = r }
}

// WithConstraints pins library versions.
func WithConstraints(c map[string]*semver.Constraints) Option {
	return func(itp *Interpreter) { itp.constraints = c }
}

// WithLibraryOptions sets the options passed to library constructors.
func WithLibraryOptions(opts LibraryOptions) Option {
	return func(itp *Interpreter) { itp.libraryOptions = opts }
}

// WithLogger enables debug logging.
func WithLogger(l Logger) Option {
	return func(itp *Interpreter) { itp.logger = l }
}

// WithContext stops execution with an Other error once ctx is cancelled.
// Cancellation is checked on every loop iteration and call.
func WithContext(ctx context.Context) Option {
	return func(itp *Interpreter) { itp.done = ctx.Done() }
}

// WithEnvironment replaces the default global environment.
func WithEnvironment(env Environment) Option {
	return func(itp *Interpreter) { itp.env = env }
}

// New creates an interpreter. Without options it reads stdin, writes
// stdout and has no libraries.
func New(opts ...Option) *Interpreter {
	itp := &Interpreter{
		env:         NewGlobalEnvironment(),
		libraries:   make(map[string]*Library),
		registry:    NewRegistry(),
		constraints: make(map[string]*semver.Constraints),
		stdout:      os.Stdout,
		stdin:       bufio.NewReader(os.Stdin),
		logger:      nopLogger{},
	}
	for _, opt := range opts {
		opt(itp)
	}
	return itp
}

// Environment exposes the global tables.
func (itp *Interpreter) Environment() Environment { return itp.env }

// Stdout returns the writer yap prints to.
func (itp *Interpreter) Stdout() io.Writer { return itp.stdout }

// signalKind is the control-flow outcome of executing a statement.
type signalKind int

const (
	signalNone signalKind = iota
	signalContinue
	signalReturn
)

type signal struct {
	kind  signalKind
	value Value
}

var noSignal = signal{kind: signalNone}

// Interpret executes top-level statements in order. Declarations register
// their bodies; a top-level blud or ghost ends the pass.
func (itp *Interpreter) Interpret(program []ast.Stmt) error {
	_, err := itp.execBlock(program)
	return err
}

// ExecStatement executes a single statement, ignoring control flow. The REPL
// uses it to run one input at a time.
func (itp *Interpreter) ExecStatement(stmt ast.Stmt) error {
	_, err := itp.execStatement(stmt)
	return err
}

// HasFunction reports whether a user function named name is defined.
func (itp *Interpreter) HasFunction(name string) bool {
	_, ok := itp.env.Function(name)
	return ok
}

// CallFunction invokes a user function with no arguments and returns its
// result. The driver uses it to run the entry point.
func (itp *Interpreter) CallFunction(name string) (Value, error) {
	fn, ok := itp.env.Function(name)
	if !ok {
		return nil, errors.UnknownFunction(name, 0)
	}
	return itp.callBody(fn, nil, fn.Line)
}

// execBlock runs statements until one produces a control-flow signal, which
// is forwarded to the caller.
func (itp *Interpreter) execBlock(stmts []ast.Stmt) (signal, error) {
	for _, stmt := range stmts {
		sig, err := itp.execStatement(stmt)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (itp *Interpreter) execStatement(stmt ast.Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *ast.Function:
		itp.env.DefineFunction(s)
		return noSignal, nil

	case *ast.Class:
		itp.env.DefineClass(s)
		return noSignal, nil

	case *ast.VariableAssign:
		return noSignal, itp.execAssign(s)

	case *ast.While:
		return itp.execWhile(s)

	case *ast.If:
		cond, err := itp.Evaluate(s.Cond)
		if err != nil {
			return noSignal, err
		}
		if Truthy(cond) {
			return itp.execBlock(s.Then)
		}
		return itp.execBlock(s.Else)

	case *ast.ForLoop:
		return itp.execFor(s)

	case *ast.Expression:
		_, err := itp.Evaluate(s.Value)
		return noSignal, err

	case *ast.Return:
		v, err := itp.Evaluate(s.Value)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: signalReturn, value: v}, nil

	case *ast.Continue:
		return signal{kind: signalContinue}, nil

	case *ast.Import:
		return noSignal, itp.importLibrary(s.Library, s.Line)

	default:
		return noSignal, errors.General(errors.PhaseRuntime, stmt.GetLine(), "unsupported statement %T", stmt)
	}
}

func (itp *Interpreter) execAssign(s *ast.VariableAssign) error {
	v, err := itp.Evaluate(s.Value)
	if err != nil {
		return err
	}
	if s.Receiver == nil {
		itp.env.Assign(s.Name, v)
		return nil
	}

	inst, err := itp.evalInstance(s.Receiver)
	if err != nil {
		return err
	}
	if !itp.env.SetField(inst, s.Name, v) {
		return errors.UnknownVariable(inst.Display(), s.Line)
	}
	return nil
}

// interrupted fails once the run's context is cancelled.
func (itp *Interpreter) interrupted(line int) error {
	select {
	case <-itp.done:
		return errors.Other(line, "execution interrupted")
	default:
		return nil
	}
}

func (itp *Interpreter) execWhile(s *ast.While) (signal, error) {
	for {
		if err := itp.interrupted(s.Line); err != nil {
			return noSignal, err
		}
		cond, err := itp.Evaluate(s.Cond)
		if err != nil {
			return noSignal, err
		}
		if !Truthy(cond) {
			return noSignal, nil
		}

		sig, err := itp.execBlock(s.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
}

func (itp *Interpreter) execFor(s *ast.ForLoop) (signal, error) {
	items, err := itp.evalList(s.Collection)
	if err != nil {
		return noSignal, err
	}

	for _, item := range items {
		if err := itp.interrupted(s.Line); err != nil {
			return noSignal, err
		}
		itp.env.Assign(s.Iterator, item)
		sig, err := itp.execBlock(s.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return noSignal, nil
}

// callBody runs a function or method body with self bound to receiver. The
// result is the returned value or Integer 0. line is the call site.
func (itp *Interpreter) callBody(fn *ast.Function, receiver *Instance, line int) (Value, error) {
	if len(itp.self) >= MaxCallDepth {
		return nil, errors.Other(line, "maximum call depth %d exceeded calling %s", MaxCallDepth, fn.Name)
	}
	if err := itp.interrupted(line); err != nil {
		return nil, err
	}
	itp.self = append(itp.self, receiver)
	defer func() { itp.self = itp.self[:len(itp.self)-1] }()

	sig, err := itp.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return Integer(0), nil
}

// currentSelf returns the receiver of the innermost method call.
func (itp *Interpreter) currentSelf() (Instance, bool) {
	if len(itp.self) == 0 || itp.self[len(itp.self)-1] == nil {
		return Instance{}, false
	}
	return *itp.self[len(itp.self)-1], true
}
