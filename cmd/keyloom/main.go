// Package main is the entry point for the keyloom driver.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keyloom/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, dump := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyloom: %v\n", err)
		return 1
	}
	defer application.Close()

	if dump {
		if err := application.DumpLayout(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "keyloom: %v\n", err)
			return 1
		}
		return 0
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrNoSource) {
			fmt.Fprintln(os.Stderr, "keyloom: nothing to do; pass -replay or -interactive, or pipe a trace")
			return 2
		}
		fmt.Fprintf(os.Stderr, "keyloom: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var dump, showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Layout, "layout", "", "Layout description file (overrides configuration)")
	flag.StringVar(&opts.Layout, "l", "", "Layout description file (shorthand)")
	flag.StringVar(&opts.Replay, "replay", "", `Replay transitions from a trace file ("-" for stdin)`)
	flag.StringVar(&opts.Replay, "r", "", "Replay transitions from a trace file (shorthand)")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Probe the terminal for key events")
	flag.BoolVar(&opts.Interactive, "i", false, "Probe the terminal for key events (shorthand)")
	flag.StringVar(&opts.Record, "record", "", "Record consumed transitions to a trace file")
	flag.BoolVar(&opts.JSON, "json", false, "Emit resolved events as JSON lines")
	flag.BoolVar(&opts.Trace, "trace", false, "Log every resolution step")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&dump, "dump-layout", false, "Print the compiled active layout as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyloom - keyboard input resolution driver\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyloom [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyloom -i                        Probe the terminal interactively\n")
		fmt.Fprintf(os.Stderr, "  keyloom -r session.trace -json    Replay a trace as JSON events\n")
		fmt.Fprintf(os.Stderr, "  keyloom -i -record session.trace  Probe and record the session\n")
		fmt.Fprintf(os.Stderr, "  keyloom -dump-layout              Print the compiled layout\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keyloom %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	stdin := int(os.Stdin.Fd())
	if opts.Interactive && !term.IsTerminal(stdin) {
		fmt.Fprintln(os.Stderr, "keyloom: interactive mode needs a terminal")
		os.Exit(1)
	}
	// A piped stdin with no source named is a replay, so
	// `cat session.trace | keyloom` does what it looks like.
	if !dump && opts.Replay == "" && !opts.Interactive && !term.IsTerminal(stdin) {
		opts.Replay = "-"
	}

	return opts, dump
}
