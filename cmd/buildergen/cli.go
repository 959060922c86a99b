package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-buildergen/internal/config"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: exitUsage, Message: fmt.Sprintf(format, args...)}
}

func failure(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: exitFailure, Message: "buildergen: " + err.Error()}
}

// invocation is the parsed command line. Settings that can also come from a
// config file or the environment live in flags; the rest are CLI only.
type invocation struct {
	flags       config.Config
	configPath  string
	interactive bool
	watch       bool
	list        bool
	runtimeDir  string
}

// parseArgs returns the invocation, whether the command should exit cleanly
// (help was requested) or an *ExitError.
func parseArgs(args []string, output io.Writer) (invocation, bool, error) {
	var inv invocation
	flagSet := flag.NewFlagSet("buildergen", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
buildergen - generate builder types for record declarations.

Usage:
  buildergen [options] [FILE]

Arguments:
  FILE
    Go source or OpenAPI document. Defaults to $GOFILE under go generate.

Options:
`)
		flagSet.PrintDefaults()
	}

	types := flagSet.String("type", "", "Comma separated record types. Empty selects structs marked //buildergen:builder.")
	source := flagSet.String("source", "", "Input file or URL.")
	flagSet.StringVar(&inv.flags.Kind, "kind", "", "Input kind: 'go' or 'openapi'. Inferred from the extension when empty.")
	flagSet.StringVar(&inv.flags.Output, "o", "", "Output file. Defaults to <source>_builder.go; '-' writes to stdout.")
	flagSet.StringVar(&inv.flags.Package, "package", "", "Package clause of the generated file. Required for OpenAPI input.")
	flagSet.StringVar(&inv.flags.Renderer, "renderer", "", "Renderer: 'go' or 'json'.")
	flagSet.StringVar(&inv.flags.Malformed, "malformed", "", "Handling of Option without a type argument: 'abort' or 'required'.")
	flagSet.StringVar(&inv.flags.RuntimeImport, "runtime-import", "", "Import path prefix of a vendored runtime (<prefix>/option, <prefix>/builder).")
	flagSet.StringVar(&inv.flags.LogLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flagSet.StringVar(&inv.flags.LogFormat, "log-format", "", "Log output format: 'text' or 'json'.")
	flagSet.StringVar(&inv.configPath, "config", "", "Settings file (.yaml, .yml or .hcl).")
	flagSet.StringVar(&inv.runtimeDir, "runtime-dir", "", "Write the runtime packages under this directory before generating.")
	flagSet.BoolVar(&inv.interactive, "interactive", false, "Pick the record types with a prompt.")
	flagSet.BoolVar(&inv.watch, "watch", false, "Regenerate whenever the source file changes.")
	flagSet.BoolVar(&inv.list, "list", false, "Print the record types the source declares and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return invocation{}, true, nil
		}
		return invocation{}, false, usageError("%v", err)
	}

	if flagSet.NArg() > 1 {
		return invocation{}, false, usageError("expected at most one FILE argument, got %d", flagSet.NArg())
	}
	inv.flags.Types = config.SplitList(*types)
	inv.flags.Source = strings.TrimSpace(*source)
	if inv.flags.Source == "" && flagSet.NArg() == 1 {
		inv.flags.Source = flagSet.Arg(0)
	}
	if inv.watch && inv.flags.Output == "-" {
		return invocation{}, false, usageError("-watch cannot be combined with -o -")
	}
	if inv.interactive && inv.list {
		return invocation{}, false, usageError("-interactive cannot be combined with -list")
	}
	return inv, false, nil
}
