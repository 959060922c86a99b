package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-buildergen"
	"github.com/goliatone/go-buildergen/internal/config"
	"github.com/goliatone/go-buildergen/internal/prompt"
	"github.com/goliatone/go-buildergen/internal/watch"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const remoteTimeout = 30 * time.Second

var generatedHeader = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	driver prompt.Driver
	logger *slog.Logger
}

func (a *app) run(ctx context.Context, args []string) error {
	inv, exit, err := parseArgs(args, a.stderr)
	if err != nil || exit {
		return err
	}

	cfg, err := config.Resolve(inv.configPath, inv.flags)
	if err != nil {
		return usageError("%v", err)
	}
	if cfg.Source == "" {
		cfg.Source = a.getenv("GOFILE")
	}
	if cfg.Source == "" {
		return usageError("no input: pass FILE, -source or run under go generate")
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.stderr)
	a.logger.Debug("configuration resolved", "source", cfg.Source, "types", cfg.Types, "renderer", cfg.Renderer)

	gen, err := a.orchestrator(cfg)
	if err != nil {
		return usageError("%v", err)
	}
	format, _ := cfg.Format()
	req := orchestrator.Request{
		Source:   sourceFor(cfg.Source),
		Format:   format,
		Types:    cfg.Types,
		Package:  cfg.Package,
		Renderer: cfg.Renderer,
	}

	if inv.watch && req.Source.Kind() != schema.SourceKindFile {
		return usageError("-watch needs a local source file")
	}

	if inv.list {
		names, err := gen.ListTypes(ctx, req)
		if err != nil {
			return failure(err)
		}
		for _, name := range names {
			fmt.Fprintln(a.stdout, name)
		}
		return nil
	}

	if inv.interactive {
		names, err := gen.ListTypes(ctx, req)
		if err != nil {
			return failure(err)
		}
		req.Types, err = prompt.SelectTypes(ctx, a.driver, names, cfg.Types)
		if err != nil {
			return failure(err)
		}
	}

	if inv.runtimeDir != "" {
		if err := buildergen.WriteRuntime(inv.runtimeDir); err != nil {
			return failure(err)
		}
		a.logger.Info("wrote runtime packages", "dir", inv.runtimeDir)
	}

	ext, err := gen.OutputExtension(cfg.Renderer)
	if err != nil {
		return usageError("%v", err)
	}
	output := outputPath(cfg, ext)
	if inv.interactive && output != "-" {
		if err := a.confirmOverwrite(ctx, output); err != nil {
			return err
		}
	}

	generate := func(ctx context.Context) error {
		return a.generate(ctx, gen, req, output)
	}
	if err := generate(ctx); err != nil {
		return failure(err)
	}
	if !inv.watch {
		return nil
	}

	w, err := watch.New(cfg.Source, watch.WithLogger(a.logger))
	if err != nil {
		return failure(err)
	}
	if err := w.Run(ctx, generate); err != nil {
		return failure(err)
	}
	return nil
}

func (a *app) orchestrator(cfg config.Config) (*orchestrator.Orchestrator, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithLoader(buildergen.NewLoader(schema.WithHTTPFallback(remoteTimeout))),
		orchestrator.WithMalformedPolicy(policy),
	}
	if prefix := strings.TrimSuffix(cfg.RuntimeImport, "/"); prefix != "" {
		options = append(options, orchestrator.WithPlanner(model.NewPlanner(
			model.WithRuntimeImports(path.Join(prefix, "option"), path.Join(prefix, "builder")),
		)))
	}
	return buildergen.NewOrchestrator(options...), nil
}

func (a *app) generate(ctx context.Context, gen *orchestrator.Orchestrator, req orchestrator.Request, output string) error {
	data, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	if output == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	a.logger.Info("wrote builders", "path", output, "bytes", len(data))
	return nil
}

func (a *app) confirmOverwrite(ctx context.Context, output string) error {
	generated, err := isGenerated(output)
	if err != nil || generated {
		// Missing files and earlier generator output are replaced silently.
		return nil
	}
	ok, err := prompt.ConfirmOverwrite(ctx, a.driver, output)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return &ExitError{Code: exitFailure, Message: fmt.Sprintf("buildergen: left %s unchanged", output)}
	}
	return nil
}

// isGenerated reports whether the file at path starts with a standard
// generated-code header.
func isGenerated(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return generatedHeader.MatchString(line), nil
	}
	return false, scanner.Err()
}

// outputPath returns the configured output, or <source>_builder<ext> next to
// the source.
func outputPath(cfg config.Config, ext string) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	src := cfg.Source
	if isURL(src) {
		src = path.Base(src)
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + "_builder" + ext
}

func sourceFor(raw string) schema.Source {
	if isURL(raw) {
		return schema.SourceFromURL(raw)
	}
	return schema.SourceFromFile(raw)
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
