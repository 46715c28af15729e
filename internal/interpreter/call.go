package interpreter

import (
	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
)

type targetKind int

const (
	targetBuiltin targetKind = iota
	targetFree
	targetMethod
	targetNative
)

// callTarget is the single resolution of a call expression.
type callTarget struct {
	kind targetKind

	builtin builtinFunc
	fn      *ast.Function
	self    Instance
	library *Library
	native  NativeFunc
}

func (itp *Interpreter) evalCall(call *ast.FunctionCall) (Value, error) {
	target, err := itp.resolveCall(call)
	if err != nil {
		return nil, err
	}
	return itp.dispatch(target, call)
}

// resolveCall picks the target of call. Receiver-less calls try builtins
// and then user functions. A receiver is resolved as self, then as a
// variable holding an instance, then as an imported library.
func (itp *Interpreter) resolveCall(call *ast.FunctionCall) (callTarget, error) {
	if call.Receiver == nil {
		if builtin, ok := builtins[call.Name]; ok {
			return callTarget{kind: targetBuiltin, builtin: builtin}, nil
		}
		if fn, ok := itp.env.Function(call.Name); ok {
			return callTarget{kind: targetFree, fn: fn}, nil
		}
		return callTarget{}, errors.UnknownFunction(call.Name, call.Line)
	}

	if ident, ok := call.Receiver.(*ast.Ident); ok {
		if ident.Name == selfName {
			if inst, ok := itp.currentSelf(); ok {
				return itp.resolveMethod(inst, call)
			}
		}
		if _, bound := itp.env.Lookup(ident.Name); !bound {
			return itp.resolveNative(ident, call)
		}
	}

	inst, err := itp.evalInstance(call.Receiver)
	if err != nil {
		return callTarget{}, err
	}
	return itp.resolveMethod(inst, call)
}

func (itp *Interpreter) resolveMethod(inst Instance, call *ast.FunctionCall) (callTarget, error) {
	fn, ok := itp.env.Method(inst.ClassName, call.Name)
	if !ok {
		return callTarget{}, errors.UnknownFunction(inst.ClassName+"."+call.Name, call.Line)
	}
	return callTarget{kind: targetMethod, fn: fn, self: inst}, nil
}

func (itp *Interpreter) resolveNative(receiver *ast.Ident, call *ast.FunctionCall) (callTarget, error) {
	lib, ok := itp.libraries[receiver.Name]
	if !ok {
		if _, known := itp.registry.Lookup(receiver.Name); known {
			return callTarget{}, errors.General(errors.PhaseRuntime, call.Line,
				"library %s is not imported", receiver.Name)
		}
		return callTarget{}, errors.UnknownVariable(receiver.Name, call.Line)
	}

	native, ok := lib.Functions[call.Name]
	if !ok {
		return callTarget{}, errors.UnknownFunction(lib.Name+"."+call.Name, call.Line)
	}
	return callTarget{kind: targetNative, library: lib, native: native}, nil
}

func (itp *Interpreter) dispatch(target callTarget, call *ast.FunctionCall) (Value, error) {
	switch target.kind {
	case targetBuiltin:
		return target.builtin(itp, call.Args, call.Line)

	case targetFree:
		if err := CheckArity(call.Args, 0, call.Line); err != nil {
			return nil, err
		}
		return itp.callBody(target.fn, nil, call.Line)

	case targetMethod:
		if err := CheckArity(call.Args, 0, call.Line); err != nil {
			return nil, err
		}
		self := target.self
		return itp.callBody(target.fn, &self, call.Line)

	case targetNative:
		state, err := target.library.take(call.Line)
		if err != nil {
			return nil, err
		}
		defer target.library.restore(state)

		itp.logger.Debug("calling %s.%s with %d argument(s) on line %d",
			target.library.Name, call.Name, len(call.Args), call.Line)
		return target.native(itp, state, call.Args, call.Line)
	}

	return nil, errors.General(errors.PhaseRuntime, call.Line, "unresolvable call %s", call)
}
