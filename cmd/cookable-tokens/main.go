// Command cookable-tokens dumps the token stream and, optionally, the parsed
// statements of a cookable script. It is a debugging aid for the front end.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
	"github.com/cookable-lang/cookable/internal/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cookable-tokens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		evalSrc = fs.String("e", "", "analyze this source instead of a file")
		showAST = fs.Bool("ast", false, "also print the parsed statements")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cookable-tokens [OPTIONS] [script]\n\n")
		fmt.Fprintf(stderr, "OPTIONS:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errors.ExitOK
		}
		return errors.ExitUsage
	}

	src, filename := *evalSrc, "<eval>"
	if src == "" {
		if fs.NArg() != 1 {
			fs.Usage()
			return errors.ExitUsage
		}
		filename = fs.Arg(0)
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read script: %v\n", err)
			return errors.ExitUsage
		}
		src = string(data)
	}

	fmt.Fprintln(stdout, "Tokens:")
	l := lexer.NewWithFilename(src, filename)
	for {
		tok, err := l.NextToken()
		if err != nil {
			fmt.Fprintf(stderr, "Lex error: %v\n", err)
			return errors.ExitCode(err)
		}
		fmt.Fprintf(stdout, "  %-14s %-24s %s\n", tok.Type, fmt.Sprintf("%q", tok.Literal), tok.Pos)
		if tok.Type == lexer.TokenEOF {
			break
		}
	}

	if !*showAST {
		return errors.ExitOK
	}

	fmt.Fprintln(stdout, "\nStatements:")
	program, err := parser.ParseSource(src, filename)
	if err != nil {
		fmt.Fprintf(stderr, "Parse error: %v\n", err)
		return errors.ExitCode(err)
	}
	for _, stmt := range program {
		fmt.Fprintf(stdout, "  %4d  %s\n", stmt.GetLine(), stmt)
	}
	return errors.ExitOK
}
