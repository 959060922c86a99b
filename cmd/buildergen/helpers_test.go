package main

import "github.com/goliatone/go-buildergen/internal/config"

func testConfig(source, renderer, output string) config.Config {
	cfg := config.Default()
	cfg.Source = source
	cfg.Renderer = renderer
	cfg.Output = output
	return cfg
}
