package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/cli"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/interpreter"
	"github.com/cookable-lang/cookable/internal/parser"
	"github.com/cookable-lang/cookable/internal/stdlib"
	"github.com/cookable-lang/cookable/internal/term"
)

const (
	promptMain = "cook> "
	promptCont = "  ... "
)

// errAborted is returned by a lineReader when the user abandons the line
// being typed (Ctrl-C).
var errAborted = stderrors.New("input aborted")

// lineReader is satisfied by liner and by the plain fallback used when
// stdin is not a terminal.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type linerReader struct {
	ln *liner.State
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.ln.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", errAborted
	}
	if err == nil && strings.TrimSpace(line) != "" {
		r.ln.AppendHistory(line)
	}
	return line, err
}

type plainReader struct {
	r *bufio.Reader
}

func (r *plainReader) Prompt(string) (string, error) {
	line, err := r.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// REPL keeps one interpreter alive across inputs.
type REPL struct {
	cfg     *cli.Config
	stdin   io.Reader
	out     io.Writer
	errOut  io.Writer
	palette term.Palette
	logger  *cli.Logger
	itp     *interpreter.Interpreter
}

// NewREPL creates a session with the standard libraries available.
func NewREPL(cfg *cli.Config, stdin io.Reader, out, errOut io.Writer) (*REPL, error) {
	r := &REPL{
		cfg:    cfg,
		stdin:  stdin,
		out:    out,
		errOut: errOut,
		logger: cli.NewLogger(errOut, cfg.Verbose, cfg.Debug),
	}
	if err := r.Reset(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset discards every variable, function, class and library.
func (r *REPL) Reset() error {
	constraints, err := r.cfg.Constraints()
	if err != nil {
		return err
	}
	r.itp = interpreter.New(
		interpreter.WithStdout(r.out),
		interpreter.WithStdin(r.stdin),
		interpreter.WithRegistry(stdlib.Standard()),
		interpreter.WithConstraints(constraints),
		interpreter.WithLibraryOptions(interpreter.LibraryOptions{Seed: r.cfg.Seed}),
		interpreter.WithLogger(r.logger),
	)
	return nil
}

// LoadFile executes a script's top-level statements in the session.
func (r *REPL) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	program, err := parser.ParseSource(string(data), path)
	if err != nil {
		return err
	}
	return r.itp.Interpret(program)
}

// Run reads and evaluates inputs until EOF or :quit.
func (r *REPL) Run(in lineReader) {
	for {
		src, ok := readCompleteInput(in, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return
			}
			continue
		}

		if err := r.Eval(src); err != nil {
			fmt.Fprintln(r.errOut, r.palette.Red(err.Error()))
		}
	}
}

// Eval runs one input. The value of an expression statement is echoed
// unless it is a yap call, which already printed.
func (r *REPL) Eval(src string) error {
	program, err := parser.ParseSource(src, "<repl>")
	if err != nil {
		return err
	}

	for _, stmt := range program {
		expr, ok := stmt.(*ast.Expression)
		if !ok {
			if err := r.itp.ExecStatement(stmt); err != nil {
				return err
			}
			continue
		}

		v, err := r.itp.Evaluate(expr.Value)
		if err != nil {
			return err
		}
		if call, ok := expr.Value.(*ast.FunctionCall); ok && call.Receiver == nil && call.Name == "yap" {
			continue
		}
		fmt.Fprintln(r.out, r.palette.Green(v.Display()))
	}
	return nil
}

func printCommands(w io.Writer) {
	fmt.Fprintf(w, "  :help              Show help\n")
	fmt.Fprintf(w, "  :quit, :q          Exit REPL\n")
	fmt.Fprintf(w, "  :vars              Show current variables\n")
	fmt.Fprintf(w, "  :libs              Show imported and available libraries\n")
	fmt.Fprintf(w, "  :reset             Reset environment\n")
}

// command handles a colon command and reports whether the session ends.
func (r *REPL) command(line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		printCommands(r.out)
	case ":vars":
		env := r.itp.Environment()
		for _, name := range env.Variables() {
			v, _ := env.Lookup(name)
			fmt.Fprintf(r.out, "%s = %s\n", name, v.Display())
		}
	case ":libs":
		fmt.Fprintf(r.out, "imported: %s\n", strings.Join(r.itp.ImportedLibraries(), ", "))
		fmt.Fprintf(r.out, "available: %s\n", strings.Join(stdlib.Standard().Names(), ", "))
	case ":reset":
		if err := r.Reset(); err != nil {
			fmt.Fprintln(r.errOut, r.palette.Red(err.Error()))
			break
		}
		fmt.Fprintln(r.out, "environment reset")
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for a list.\n", line)
	}
	return false
}

// readCompleteInput reads lines until they form a complete input. Input is
// incomplete while the parser fails at end of file. An aborted prompt
// discards everything typed so far and starts over.
func readCompleteInput(in lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := in.Prompt(p)
		if stderrors.Is(err, errAborted) {
			b.Reset()
			continue
		}
		if stderrors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := tryParse(src); perr != nil && isIncomplete(perr) {
			continue
		}
		return src, true
	}
}

func tryParse(src string) ([]ast.Stmt, error) {
	return parser.ParseSource(src, "<repl>")
}

// isIncomplete reports whether a parse failed only because input ended.
func isIncomplete(err error) bool {
	se, ok := errors.As(err)
	return ok && se.Phase == errors.PhaseParse && se.Get("found") == "EOF"
}
