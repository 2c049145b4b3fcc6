// Package main implements the blocky command, which lexes, parses and
// runs Blocky programs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/you-not-fish/blocky/internal/config"
	"github.com/you-not-fish/blocky/internal/interp"
	"github.com/you-not-fish/blocky/internal/syntax"
)

// Command-line flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text, json, mermaid or source)")
	output     = flag.String("o", "", "Export the AST to file (format from extension: .mmd, .json, .bl, else text)")
	configFile = flag.String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	colorMode  = flag.String("color", config.ColorAuto, "Color diagnostics: auto, always or never")
	version    = flag.Bool("version", false, "Print version")
	trace      = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

var (
	errColor   = color.New(color.FgRed, color.Bold)
	traceColor = color.New(color.FgCyan)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Blocky %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: blocky [options] <file.bl>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("blocky version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if err := loadConfig(); err != nil {
		report(err)
		os.Exit(1)
	}
	if err := config.CheckColor(*colorMode); err != nil {
		report(err)
		os.Exit(1)
	}
	setupColor(*colorMode)

	args := flag.Args()
	if len(args) == 0 {
		report(fmt.Errorf("no input file"))
		fmt.Fprintln(os.Stderr, "usage: blocky [options] <file.bl>")
		os.Exit(1)
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename, *astFormat))
	}

	// Handle -o
	if *output != "" {
		os.Exit(runExport(filename, *output))
	}

	os.Exit(run(filename))
}

// loadConfig reads the config file, if any, and applies its values to
// the flags not given on the command line.
func loadConfig() error {
	path := *configFile
	if path == "" {
		var ok bool
		if path, ok = config.Find(); !ok {
			return nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	mergeConfig(cfg, set)
	return nil
}

// mergeConfig copies cfg into the flags whose names are not in set.
func mergeConfig(cfg config.Config, set map[string]bool) {
	if !set["ast-format"] {
		*astFormat = cfg.AstFormat
	}
	if !set["color"] {
		*colorMode = cfg.Color
	}
	if !set["trace"] {
		*trace = cfg.Trace
	}
}

// setupColor turns colored output on or off for mode. In auto mode
// color is used when stderr is a terminal and NO_COLOR is unset.
func setupColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		fd := os.Stderr.Fd()
		tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		color.NoColor = !tty || os.Getenv("NO_COLOR") != ""
	}
}

// report prints err as a diagnostic on stderr.
func report(err error) {
	fmt.Fprintln(os.Stderr, errColor.Sprint("error: ")+err.Error())
}

// stage starts timing a pipeline stage. The returned func prints the
// elapsed time when -trace is set.
func stage(name string) func() {
	if !*trace {
		return func() {}
	}
	start := time.Now()
	return func() {
		traceColor.Fprintf(os.Stderr, "trace: %-6s %v\n", name, time.Since(start))
	}
}

// lexFile reads and tokenizes filename.
func lexFile(filename string) ([]syntax.Token, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	done := stage("lex")
	defer done()
	return syntax.Lex(filename, f)
}

// parseFile reads, tokenizes and parses filename.
func parseFile(filename string) (*syntax.Block, error) {
	toks, err := lexFile(filename)
	if err != nil {
		return nil, err
	}

	done := stage("parse")
	defer done()
	return syntax.Parse(toks)
}

// runEmitTokens lexes the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	toks, err := lexFile(filename)
	if err != nil {
		report(err)
		return 1
	}

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		fmt.Fprintf(w, "%-20s %-12s %s\n", tok.Pos, tok.Kind, tok.Literal())
	}
	if err := w.Flush(); err != nil {
		report(err)
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST in format.
func runEmitAST(filename, format string) int {
	f, err := syntax.ParseFormat(format)
	if err != nil {
		report(err)
		return 1
	}
	prog, err := parseFile(filename)
	if err != nil {
		report(err)
		return 1
	}

	w := bufio.NewWriter(os.Stdout)
	if err := syntax.Export(w, prog, f); err != nil {
		report(err)
		return 1
	}
	if err := w.Flush(); err != nil {
		report(err)
		return 1
	}
	return 0
}

// runExport parses the input file and writes its AST to dest.
func runExport(filename, dest string) int {
	prog, err := parseFile(filename)
	if err != nil {
		report(err)
		return 1
	}

	done := stage("export")
	err = syntax.ExportFile(prog, dest)
	done()
	if err != nil {
		report(err)
		return 1
	}
	return 0
}

// run parses and executes the input file, then prints the value of the
// return register.
func run(filename string) int {
	prog, err := parseFile(filename)
	if err != nil {
		report(err)
		return 1
	}

	w := bufio.NewWriter(os.Stdout)
	in := interp.New(w)

	done := stage("run")
	ret, err := in.Run(prog)
	done()
	if err != nil {
		w.Flush()
		report(err)
		return 1
	}

	fmt.Fprintf(w, "return : %d\n", ret)
	if err := w.Flush(); err != nil {
		report(err)
		return 1
	}
	if *trace {
		traceColor.Fprintf(os.Stderr, "trace: %d statements executed\n", in.Steps())
	}
	return 0
}
