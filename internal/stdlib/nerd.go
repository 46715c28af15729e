package stdlib

import (
	"math/rand/v2"
	"time"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/interpreter"
)

const (
	NerdName    = "nerd"
	NerdVersion = "1.1.0"
)

// NewNerd creates the random number library. A non-zero seed makes the
// sequence reproducible.
func NewNerd(opts interpreter.LibraryOptions) (*interpreter.Library, error) {
	seed := uint64(opts.Seed)
	if opts.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state := &interpreter.NerdState{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}

	return interpreter.NewLibrary(NerdName, NerdVersion, state, map[string]interpreter.NativeFunc{
		"randInt":  nerdRandInt,
		"getState": nerdGetState,
	})
}

func nerdState(state interpreter.State, line int) (*interpreter.NerdState, error) {
	s, ok := state.(*interpreter.NerdState)
	if !ok {
		return nil, errors.General(errors.PhaseRuntime, line, "nerd: unexpected library state %T", state)
	}
	return s, nil
}

// nerdRandInt returns a random integer in [min, max].
func nerdRandInt(itp *interpreter.Interpreter, state interpreter.State, args []ast.Expr, line int) (interpreter.Value, error) {
	if err := interpreter.CheckArity(args, 2, line); err != nil {
		return nil, err
	}
	s, err := nerdState(state, line)
	if err != nil {
		return nil, err
	}

	lo, err := itp.ExprToNumber(args[0])
	if err != nil {
		return nil, err
	}
	hi, err := itp.ExprToNumber(args[1])
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errors.General(errors.PhaseRuntime, line, "randInt: min %d is greater than max %d", lo, hi)
	}

	s.Calls++
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		return interpreter.Integer(int64(s.Rand.Uint64())), nil
	}
	return interpreter.Integer(lo + int64(s.Rand.Uint64N(span))), nil
}

// nerdGetState returns how many numbers randInt has produced.
func nerdGetState(itp *interpreter.Interpreter, state interpreter.State, args []ast.Expr, line int) (interpreter.Value, error) {
	if err := interpreter.CheckArity(args, 0, line); err != nil {
		return nil, err
	}
	s, err := nerdState(state, line)
	if err != nil {
		return nil, err
	}
	return interpreter.Integer(s.Calls), nil
}
