package interpreter

import (
	"math"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
)

const (
	selfName        = "self"
	constructorName = "__edge__"
)

// Evaluate computes the value of an expression.
func (itp *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Number:
		return Integer(e.Value), nil
	case *ast.StringLiteral:
		return String(e.Value), nil
	case *ast.Boolean:
		return Boolean(e.Value), nil
	case *ast.Ident:
		return itp.evalIdent(e)
	case *ast.List:
		items, err := itp.evalList(e)
		if err != nil {
			return nil, err
		}
		return List(items), nil
	case *ast.BinOp:
		return itp.evalBinOp(e)
	case *ast.FunctionCall:
		return itp.evalCall(e)
	case *ast.NewInstance:
		return itp.evalNewInstance(e)
	case *ast.ObjectValue:
		inst, err := itp.evalInstance(e.Receiver)
		if err != nil {
			return nil, err
		}
		v, ok := itp.env.Field(inst, e.Name)
		if !ok {
			return nil, errors.UnknownVariable(e.String(), e.Line)
		}
		return v, nil
	default:
		return nil, errors.General(errors.PhaseRuntime, expr.GetLine(), "unsupported expression %T", expr)
	}
}

func (itp *Interpreter) evalIdent(e *ast.Ident) (Value, error) {
	if e.Name == selfName {
		if inst, ok := itp.currentSelf(); ok {
			return inst, nil
		}
	}
	v, ok := itp.env.Lookup(e.Name)
	if !ok {
		return nil, errors.UnknownVariable(e.Name, e.Line)
	}
	return v, nil
}

func (itp *Interpreter) evalList(e *ast.List) ([]Value, error) {
	items := make([]Value, len(e.Elements))
	for i, element := range e.Elements {
		v, err := itp.Evaluate(element)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// evalInstance evaluates a receiver expression that must yield an Instance.
func (itp *Interpreter) evalInstance(expr ast.Expr) (Instance, error) {
	v, err := itp.Evaluate(expr)
	if err != nil {
		return Instance{}, err
	}
	inst, ok := v.(Instance)
	if !ok {
		return Instance{}, errors.TypeMismatch("Instance", v.TypeName(), expr.GetLine())
	}
	return inst, nil
}

func (itp *Interpreter) evalNewInstance(e *ast.NewInstance) (Value, error) {
	constructor, ok := itp.env.Method(e.ClassName, constructorName)
	if !ok {
		if itp.env.HasClass(e.ClassName) {
			return nil, errors.General(errors.PhaseRuntime, e.Line, "class %s has no %s method", e.ClassName, constructorName)
		}
		return nil, errors.General(errors.PhaseRuntime, e.Line, "unknown class: %s", e.ClassName)
	}
	if len(e.Args) != 0 {
		return nil, errors.ArgumentMismatch(0, len(e.Args), e.Line)
	}

	inst := itp.env.Allocate(e.ClassName)
	if _, err := itp.callBody(constructor, &inst, e.Line); err != nil {
		return nil, err
	}
	return inst, nil
}

// evalBinOp evaluates the left operand, then the right, then applies op.
func (itp *Interpreter) evalBinOp(e *ast.BinOp) (Value, error) {
	left, err := itp.Evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := itp.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case lexer.TokenPlus:
		if ls, ok := left.(String); ok {
			rs, ok := right.(String)
			if !ok {
				return nil, errors.TypeMismatch("String", right.TypeName(), e.Line)
			}
			return ls + rs, nil
		}
		a, b, err := integerOperands(left, right, e.Line)
		if err != nil {
			return nil, err
		}
		sum := a + b
		if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
			return nil, errors.IntegerOverflow("addition", e.Line, a, b)
		}
		return Integer(sum), nil

	case lexer.TokenMinus:
		a, b, err := integerOperands(left, right, e.Line)
		if err != nil {
			return nil, err
		}
		diff := a - b
		if (b > 0 && diff > a) || (b < 0 && diff < a) {
			return nil, errors.IntegerOverflow("subtraction", e.Line, a, b)
		}
		return Integer(diff), nil

	case lexer.TokenMul:
		a, b, err := integerOperands(left, right, e.Line)
		if err != nil {
			return nil, err
		}
		return multiply(a, b, e.Line)

	case lexer.TokenDiv:
		a, b, err := integerOperands(left, right, e.Line)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, errors.DivisionByZero(e.Line)
		}
		if a == math.MinInt64 && b == -1 {
			return nil, errors.IntegerOverflow("division", e.Line, a, b)
		}
		return Integer(a / b), nil

	case lexer.TokenEq:
		switch l := left.(type) {
		case Integer:
			r, ok := right.(Integer)
			if !ok {
				return nil, errors.TypeMismatch("Integer", right.TypeName(), e.Line)
			}
			return Boolean(l == r), nil
		case String:
			r, ok := right.(String)
			if !ok {
				return nil, errors.TypeMismatch("String", right.TypeName(), e.Line)
			}
			return Boolean(l == r), nil
		default:
			return nil, errors.TypeMismatch("Integer or String", left.TypeName(), e.Line)
		}

	case lexer.TokenGt, lexer.TokenLt:
		a, b, err := integerOperands(left, right, e.Line)
		if err != nil {
			return nil, err
		}
		if e.Op == lexer.TokenGt {
			return Boolean(a > b), nil
		}
		return Boolean(a < b), nil

	default:
		return nil, errors.General(errors.PhaseRuntime, e.Line, "unsupported operator %s", e.Op)
	}
}

func integerOperands(left, right Value, line int) (int64, int64, error) {
	a, ok := left.(Integer)
	if !ok {
		return 0, 0, errors.TypeMismatch("Integer", left.TypeName(), line)
	}
	b, ok := right.(Integer)
	if !ok {
		return 0, 0, errors.TypeMismatch("Integer", right.TypeName(), line)
	}
	return int64(a), int64(b), nil
}

func multiply(a, b int64, line int) (Value, error) {
	if a == 0 || b == 0 {
		return Integer(0), nil
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return nil, errors.IntegerOverflow("multiplication", line, a, b)
	}
	return Integer(product), nil
}
