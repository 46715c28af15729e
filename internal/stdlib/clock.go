package stdlib

import (
	"time"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/interpreter"
)

const (
	ClockName    = "clock"
	ClockVersion = "1.0.0"
)

// NewClock returns a constructor for the timing library. The clock starts
// when the library is imported.
func NewClock(now func() time.Time, sleep func(time.Duration)) interpreter.Constructor {
	return func(interpreter.LibraryOptions) (*interpreter.Library, error) {
		state := &interpreter.ClockState{Start: now(), Now: now, Sleep: sleep}
		return interpreter.NewLibrary(ClockName, ClockVersion, state, map[string]interpreter.NativeFunc{
			"millis": clockMillis,
			"sleep":  clockSleep,
		})
	}
}

func clockState(state interpreter.State, line int) (*interpreter.ClockState, error) {
	s, ok := state.(*interpreter.ClockState)
	if !ok {
		return nil, errors.General(errors.PhaseRuntime, line, "clock: unexpected library state %T", state)
	}
	return s, nil
}

// clockMillis returns the milliseconds elapsed since import.
func clockMillis(itp *interpreter.Interpreter, state interpreter.State, args []ast.Expr, line int) (interpreter.Value, error) {
	if err := interpreter.CheckArity(args, 0, line); err != nil {
		return nil, err
	}
	s, err := clockState(state, line)
	if err != nil {
		return nil, err
	}
	return interpreter.Integer(s.Now().Sub(s.Start).Milliseconds()), nil
}

// clockSleep blocks for the given number of milliseconds.
func clockSleep(itp *interpreter.Interpreter, state interpreter.State, args []ast.Expr, line int) (interpreter.Value, error) {
	if err := interpreter.CheckArity(args, 1, line); err != nil {
		return nil, err
	}
	s, err := clockState(state, line)
	if err != nil {
		return nil, err
	}

	ms, err := itp.ExprToNumber(args[0])
	if err != nil {
		return nil, err
	}
	if ms < 0 {
		return nil, errors.General(errors.PhaseRuntime, line, "sleep: negative duration %d", ms)
	}
	s.Sleep(time.Duration(ms) * time.Millisecond)
	return interpreter.Integer(0), nil
}
