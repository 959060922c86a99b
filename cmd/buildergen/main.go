// Command buildergen generates builder types for Go records and OpenAPI
// component schemas.
//
// Typical use is through go generate:
//
//	//go:generate go run github.com/goliatone/go-buildergen/cmd/buildergen -type Manifest,Package
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-buildergen/internal/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the command for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	a := &app{
		stdout: outW,
		stderr: errW,
		getenv: os.Getenv,
		driver: prompt.NewSurveyDriver(),
	}
	return a.run(ctx, args)
}
