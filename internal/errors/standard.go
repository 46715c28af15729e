// Package errors provides the error taxonomy shared by the cookable lexer,
// parser and interpreter.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Phase identifies the pipeline stage that raised an error.
type Phase string

const (
	PhaseLex     Phase = "LEX"
	PhaseParse   Phase = "PARSE"
	PhaseRuntime Phase = "RUNTIME"
)

// Kind identifies the error variant.
type Kind string

const (
	KindUnexpectedChar         Kind = "LexerUnexpectedChar"
	KindUnexpectedToken        Kind = "UnexpectedToken"
	KindUnknownUnexpectedToken Kind = "UnknownUnexpectedToken"
	KindGeneral                Kind = "GeneralError"
	KindArgumentMismatch       Kind = "ArgumentMismatch"
	KindTypeError              Kind = "TypeError"
	KindUnknownFunction        Kind = "UnknownFunction"
	KindUnknownVariable        Kind = "UnknownVariable"
	KindDivisionByZero         Kind = "DivisionByZero"
	KindOther                  Kind = "Other"
)

// ScriptError is the single error type flowing out of every phase.
// Context carries the variant's structured fields (expected, found, name).
type ScriptError struct {
	Phase   Phase
	Kind    Kind
	Line    int
	Message string
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	return fmt.Sprintf("[%s:%s] on line %d: %s", e.Phase, e.Kind, e.Line, e.Message)
}

// Get returns a context field rendered as a string.
func (e *ScriptError) Get(key string) string {
	v, ok := e.Context[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// NewScriptError creates a new error.
func NewScriptError(phase Phase, kind Kind, line int, message string, context map[string]interface{}) *ScriptError {
	if context == nil {
		context = map[string]interface{}{}
	}
	return &ScriptError{
		Phase:   phase,
		Kind:    kind,
		Line:    line,
		Message: message,
		Context: context,
	}
}

// As extracts a *ScriptError from err.
func As(err error) (*ScriptError, bool) {
	var se *ScriptError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// KindOf returns the kind of err, or the empty kind for foreign errors.
func KindOf(err error) Kind {
	if se, ok := As(err); ok {
		return se.Kind
	}
	return ""
}

// Lexer errors

func UnexpectedChar(found rune, line int) *ScriptError {
	return NewScriptError(PhaseLex, KindUnexpectedChar, line,
		fmt.Sprintf("unexpected character %q", found),
		map[string]interface{}{"found": string(found)})
}

// Parser errors

func UnexpectedToken(expected, found string, line int) *ScriptError {
	return NewScriptError(PhaseParse, KindUnexpectedToken, line,
		fmt.Sprintf("expected token: %s, but found token: %s", expected, found),
		map[string]interface{}{"expected": expected, "found": found})
}

func UnknownUnexpectedToken(found string, line int) *ScriptError {
	return NewScriptError(PhaseParse, KindUnknownUnexpectedToken, line,
		fmt.Sprintf("found token: %s, but it's not expected", found),
		map[string]interface{}{"found": found})
}

// General builds a GeneralError for the given phase; structural parse
// violations and unknown imports both use it.
func General(phase Phase, line int, format string, args ...interface{}) *ScriptError {
	return NewScriptError(phase, KindGeneral, line, fmt.Sprintf(format, args...), nil)
}

// Runtime errors

func ArgumentMismatch(expected, found, line int) *ScriptError {
	return NewScriptError(PhaseRuntime, KindArgumentMismatch, line,
		fmt.Sprintf("expected %d argument(s), but found %d", expected, found),
		map[string]interface{}{"expected": expected, "found": found})
}

func TypeMismatch(expected, found string, line int) *ScriptError {
	return NewScriptError(PhaseRuntime, KindTypeError, line,
		fmt.Sprintf("expected type %s, but found %s", expected, found),
		map[string]interface{}{"expected": expected, "found": found})
}

func UnknownFunction(name string, line int) *ScriptError {
	return NewScriptError(PhaseRuntime, KindUnknownFunction, line,
		fmt.Sprintf("unknown function: %s", name),
		map[string]interface{}{"name": name})
}

func UnknownVariable(name string, line int) *ScriptError {
	return NewScriptError(PhaseRuntime, KindUnknownVariable, line,
		fmt.Sprintf("unknown variable: %s", name),
		map[string]interface{}{"name": name})
}

func DivisionByZero(line int) *ScriptError {
	return NewScriptError(PhaseRuntime, KindDivisionByZero, line, "division by zero", nil)
}

func Other(line int, format string, args ...interface{}) *ScriptError {
	return NewScriptError(PhaseRuntime, KindOther, line, fmt.Sprintf(format, args...), nil)
}

// IntegerOverflow reports an arithmetic result that does not fit in 64 bits.
func IntegerOverflow(operation string, line int, values ...interface{}) *ScriptError {
	return NewScriptError(PhaseRuntime, KindOther, line,
		fmt.Sprintf("integer overflow in %s operation", operation),
		map[string]interface{}{"operation": operation, "values": values})
}

// Exit codes per phase.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitLex          = 2
	ExitParse        = 3
	ExitRuntime      = 4
	ExitNoEntryPoint = 5
	ExitInterrupted  = 130
)

// ExitCode maps an error to the process exit code the driver uses.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	se, ok := As(err)
	if !ok {
		return ExitUsage
	}
	switch se.Phase {
	case PhaseLex:
		return ExitLex
	case PhaseParse:
		return ExitParse
	default:
		return ExitRuntime
	}
}
