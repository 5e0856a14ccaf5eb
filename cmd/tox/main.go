package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/toxlang/tox/tox"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tox", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	plain := fs.Bool("plain", false, "use the line-oriented prompt instead of the full-screen session")
	configPath := fs.String("config", "", "path to a session config file")
	if err := fs.Parse(args); err != nil {
		printUsage()
		return 64
	}

	rest := fs.Args()
	switch {
	case len(rest) == 0:
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *plain {
			cfg.Plain = true
		}
		return runSession(cfg)
	case len(rest) == 1:
		return runFile(rest[0])
	case len(rest) == 2 && rest[0] == "e":
		return runSource(rest[1])
	default:
		printUsage()
		return 64
	}
}

func runSession(cfg replConfig) int {
	if cfg.Plain || !isatty.IsTerminal(os.Stdin.Fd()) {
		return runPlainSession(cfg)
	}
	return runTUI(cfg)
}

func runFile(path string) int {
	input, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read script: %v\n", err)
		return 1
	}
	return runSource(string(input))
}

func runSource(source string) int {
	engine, err := tox.NewEngine(tox.Config{Out: os.Stdout})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := engine.Run(source); err != nil {
		fmt.Fprintln(os.Stderr, tox.FormatErrorWithSource(err, source))
		return 1
	}
	return 0
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] [script]\n", prog)
	fmt.Fprintf(os.Stderr, "       %s e <source>\n", prog)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -plain")
	fmt.Fprintln(os.Stderr, "    use the line-oriented prompt instead of the full-screen session")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    path to a session config file")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
