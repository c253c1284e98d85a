// Package main is a terminal demo host for the rowgrid layout engine.
// It renders a grid of independently horizontally-scrollable rows and
// drives every operation of the layout-provider contract: per-row
// scrolling, batched row/item insertion and deletion, and container
// resize handling.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/rowgrid/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to layout configuration file")
	flag.StringVar(&configPath, "c", "", "Path to layout configuration file (shorthand)")
	flag.Usage = usage
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	app, err := newApp(cfg, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.shutdown()

	if err := app.runLoop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `rowgrid - scrollable row-grid layout demo

Usage: rowgrid [options]

Options:
  -config, -c <path>  Layout configuration file (TOML)

Keys:
  up/down     move row focus
  left/right  scroll the focused row
  i / d       insert / delete an item in the focused row
  I / D       insert / delete a row at the focus
  q, esc      quit
`)
}
