package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line options.
type cliFlags struct {
	config      string
	contentRoot string
	output      string
	assetsDir   string
	page        bool
	cells       string
	language    string
	verbose     bool
	version     bool
}

const usageText = `Usage: nb2html [flags] <notebook-or-page>

Renders a Jupyter notebook (or a page containing {%% thebe %%} tags,
with --page) to an HTML fragment for embedding in a generated site.

The notebook path is relative to <content-root>/<notebook-dir>, where
notebook-dir comes from the config file (default "notebooks").

Examples:
  nb2html demo.ipynb
  nb2html --cells 2:5 --language python demo.ipynb
  nb2html --page content/posts/analysis.md -o analysis.html

Flags:
`

// parseFlags parses command-line arguments. Returns the flags and the
// remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("nb2html", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "site config file (YAML)")
	fs.StringVar(&f.contentRoot, "content-root", "content", "content root directory")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory to write stylesheet resources into")
	fs.BoolVarP(&f.page, "page", "p", false, "treat the input as a page with {% thebe %} tags")
	fs.StringVar(&f.cells, "cells", "", "cell range, slice syntax (e.g. 2:5, :-1)")
	fs.StringVar(&f.language, "language", "", "highlighting language override")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
