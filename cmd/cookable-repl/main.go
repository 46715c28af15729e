// Command cookable-repl is an interactive cookable session.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/peterh/liner"

	"github.com/cookable-lang/cookable/internal/cli"
	"github.com/cookable-lang/cookable/internal/term"
)

const historyFile = ".cookable_history"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		debugMode   = flag.Bool("debug", false, "log imports and native calls")
		seed        = flag.Int64("seed", 0, "seed for the nerd library (0 = random)")
		loadFile    = flag.String("load", "", "load and execute file before starting the REPL")
		configPath  = flag.String("config", "", "configuration file (.json, .yml or .yaml)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Interactive cookable session.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nREPL COMMANDS:\n")
		printCommands(os.Stderr)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		if err := cli.PrintVersion(os.Stdout, "cookable-repl", *jsonOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *debugMode {
		cfg.Debug = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	interactive := term.IsStdinTerminal()
	stdin := bufio.NewReader(os.Stdin)

	repl, err := NewREPL(cfg, stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	repl.palette = term.Palette{Enabled: interactive && term.IsStderrTerminal()}

	if *loadFile != "" {
		if err := repl.LoadFile(*loadFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load %s: %v\n", *loadFile, err)
			os.Exit(1)
		}
	}

	if !interactive {
		repl.Run(&plainReader{r: stdin})
		return
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	saveHistory := func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	defer saveHistory()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		saveHistory()
		ln.Close()
		os.Exit(130)
	}()

	fmt.Printf("cookable v%s - type :help for commands, :quit to exit\n", cli.Version)
	repl.Run(&linerReader{ln: ln})
}
