package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
)

type builtinFunc func(itp *Interpreter, args []ast.Expr, line int) (Value, error)

var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"yap":    builtinYap,
		"yapask": builtinYapAsk,
		"num":    builtinNum,
	}
}

// IsBuiltin reports whether name is a global builtin.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (itp *Interpreter) displayArgs(args []ast.Expr) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		v, err := itp.Evaluate(arg)
		if err != nil {
			return "", err
		}
		parts[i] = v.Display()
	}
	return strings.Join(parts, " "), nil
}

// builtinYap prints its arguments separated by spaces.
func builtinYap(itp *Interpreter, args []ast.Expr, line int) (Value, error) {
	text, err := itp.displayArgs(args)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(itp.stdout, text)
	return Integer(0), nil
}

// builtinYapAsk prints a prompt and reads one line.
func builtinYapAsk(itp *Interpreter, args []ast.Expr, line int) (Value, error) {
	prompt, err := itp.displayArgs(args)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(itp.stdout, prompt)

	input, err := itp.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Other(line, "reading input: %v", err)
	}
	return String(strings.TrimRight(input, "\r\n")), nil
}

// builtinNum converts a String to an Integer.
func builtinNum(itp *Interpreter, args []ast.Expr, line int) (Value, error) {
	if err := CheckArity(args, 1, line); err != nil {
		return nil, err
	}
	v, err := itp.Evaluate(args[0])
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case Integer:
		return x, nil
	case String:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return nil, errors.TypeMismatch("numeric String", fmt.Sprintf("String(%q)", string(x)), line)
		}
		return Integer(n), nil
	default:
		return nil, errors.TypeMismatch("String", v.TypeName(), line)
	}
}
