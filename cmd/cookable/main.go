// Command cookable runs a cookable script: it loads the file, executes its
// top-level statements and then calls the entry point function.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cookable-lang/cookable/internal/cli"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/interpreter"
	"github.com/cookable-lang/cookable/internal/parser"
	"github.com/cookable-lang/cookable/internal/position"
	"github.com/cookable-lang/cookable/internal/stdlib"
	"github.com/cookable-lang/cookable/internal/term"
	"github.com/cookable-lang/cookable/internal/watch"
)

const toolName = "cookable"

var command = cli.CommandInfo{
	Name:        toolName,
	Usage:       "cookable [OPTIONS] <script>",
	Description: "run a cookable script",
	Flags: []cli.FlagInfo{
		{Name: "config", Usage: "configuration file (.json, .yml or .yaml)"},
		{Name: "entry", Usage: "entry point function", Default: cli.DefaultEntryPoint},
		{Name: "seed", Usage: "seed for the nerd library (0 = random)", Default: "0"},
		{Name: "watch", Usage: "re-run the script whenever it changes"},
		{Name: "verbose", Usage: "enable verbose output"},
		{Name: "debug", Usage: "log imports and native calls"},
		{Name: "version", Usage: "show version information"},
		{Name: "json", Usage: "output version in JSON format"},
		{Name: "help", Usage: "show help information"},
	},
	Examples: []string{
		"cookable hello.cook",
		"cookable --seed 7 --debug dice.cook",
		"cookable --watch --config cookable.yaml game.cook",
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options are the resolved settings for one invocation.
type options struct {
	script  string
	config  *cli.Config
	logger  *cli.Logger
	palette term.Palette
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		showVersion = fs.Bool("version", false, "show version information")
		showHelp    = fs.Bool("help", false, "show help information")
		jsonOutput  = fs.Bool("json", false, "output version in JSON format")
		verbose     = fs.Bool("verbose", false, "enable verbose output")
		debugMode   = fs.Bool("debug", false, "log imports and native calls")
		configPath  = fs.String("config", "", "configuration file")
		entry       = fs.String("entry", cli.DefaultEntryPoint, "entry point function")
		seed        = fs.Int64("seed", 0, "seed for the nerd library")
		watchMode   = fs.Bool("watch", false, "re-run the script whenever it changes")
	)
	fs.Usage = func() { cli.PrintUsage(stderr, command) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errors.ExitOK
		}
		return errors.ExitUsage
	}

	if *showHelp {
		cli.PrintUsage(stdout, command)
		return errors.ExitOK
	}
	if *showVersion {
		if err := cli.PrintVersion(stdout, toolName, *jsonOutput); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return errors.ExitUsage
		}
		return errors.ExitOK
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one script path\n\n")
		cli.PrintUsage(stderr, command)
		return errors.ExitUsage
	}

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitUsage
	}

	// Flags given on the command line win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose":
			cfg.Verbose = *verbose
		case "debug":
			cfg.Debug = *debugMode
		case "entry":
			cfg.EntryPoint = *entry
		case "seed":
			cfg.Seed = *seed
		case "watch":
			cfg.Watch = *watchMode
		}
	})

	opts := &options{
		script:  fs.Arg(0),
		config:  cfg,
		logger:  cli.NewLogger(stderr, cfg.Verbose, cfg.Debug),
		palette: term.Palette{Enabled: isTerminalWriter(stderr)},
	}

	if cfg.Watch {
		return watchScript(opts, stdin, stdout, stderr)
	}
	return execute(context.Background(), opts, stdin, stdout, stderr)
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// execute runs the script once and returns the process exit code. Loops and
// calls stop with a runtime error once ctx is cancelled.
func execute(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	data, err := os.ReadFile(opts.script)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to read script: %v\n", err)
		return errors.ExitUsage
	}
	source := position.NewSourceFile(opts.script, string(data))

	constraints, err := opts.config.Constraints()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitUsage
	}

	start := time.Now()
	opts.logger.Info("running %s", opts.script)

	program, err := parser.ParseSource(source.Content, opts.script)
	if err != nil {
		return report(opts, stderr, source, err)
	}

	itp := interpreter.New(
		interpreter.WithStdout(stdout),
		interpreter.WithStdin(stdin),
		interpreter.WithRegistry(stdlib.Standard()),
		interpreter.WithConstraints(constraints),
		interpreter.WithLibraryOptions(interpreter.LibraryOptions{Seed: opts.config.Seed}),
		interpreter.WithLogger(opts.logger),
		interpreter.WithContext(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			code = report(opts, stderr, source, errors.Other(0, "internal error: %v", r))
		}
	}()

	if err := itp.Interpret(program); err != nil {
		return report(opts, stderr, source, err)
	}

	entry := opts.config.EntryPoint
	if !itp.HasFunction(entry) {
		fmt.Fprintf(stderr, "%s entry point function %q is not defined\n", opts.palette.Red("error:"), entry)
		return errors.ExitNoEntryPoint
	}

	result, err := itp.CallFunction(entry)
	if err != nil {
		return report(opts, stderr, source, err)
	}

	opts.logger.Info("%s() returned %s in %v", entry, result.Display(), time.Since(start))
	return errors.ExitOK
}

// report prints err with the offending source line and returns its exit code.
func report(opts *options, stderr io.Writer, source *position.SourceFile, err error) int {
	fmt.Fprintf(stderr, "%s %v\n", opts.palette.Red("error:"), err)
	if se, ok := errors.As(err); ok {
		pos := position.Position{Filename: source.Filename, Line: se.Line, Column: 1}
		if excerpt := source.Excerpt(se.Line); excerpt != "" {
			fmt.Fprintf(stderr, "  --> %s\n%s\n", pos, opts.palette.Dim(excerpt))
		}
	}
	return errors.ExitCode(err)
}

// watchScript runs the script, then again after every change, until
// interrupted, and then exits with ExitInterrupted. Runs happen one at a
// time on their own goroutine, so an interrupt returns at once even while a
// script is still executing; the run itself is cancelled through ctx.
func watchScript(opts *options, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(opts.script)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to watch %s: %v\n", opts.script, err)
		return errors.ExitUsage
	}

	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-trigger:
			}
			if ctx.Err() != nil {
				return
			}
			code := execute(ctx, opts, stdin, stdout, stderr)
			if ctx.Err() == nil {
				opts.logger.Info("exit status %d, watching %s for changes", code, opts.script)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		// A second interrupt gets the default handler.
		stop()
		return w.Close()
	})
	g.Go(func() error {
		return w.Run(gctx, 100*time.Millisecond, func() error {
			fmt.Fprintln(stderr, opts.palette.Blue("--- change detected, re-running ---"))
			select {
			case trigger <- struct{}{}:
			default:
			}
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitUsage
	}
	opts.logger.Info("interrupted, no longer watching %s", opts.script)
	return errors.ExitInterrupted
}
