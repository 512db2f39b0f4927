package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/config"
)

// run executes the CLI: build a service from the config, render the
// requested notebook or page, and write the HTML plus any requested
// stylesheet resources.
func run(args []string, stdout io.Writer) error {
	flags, rest, err := parseFlags(args)
	if err != nil {
		// --help already printed the usage text.
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.version {
		fmt.Fprintln(stdout, Version)
		return nil
	}

	if len(rest) != 1 {
		return fmt.Errorf("expected exactly one notebook or page argument, got %d", len(rest))
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	svc, err := nb2html.New(cfg)
	if err != nil {
		return err
	}

	var html string
	if flags.page {
		html, err = renderPage(svc, flags, rest[0])
	} else {
		html, err = renderNotebook(svc, flags, rest[0])
	}
	if err != nil {
		return err
	}

	if err := writeOutput(stdout, flags.output, html); err != nil {
		return err
	}

	if flags.assetsDir != "" {
		resources, err := svc.Resources()
		if err != nil {
			return err
		}
		if err := writeResources(flags.assetsDir, resources); err != nil {
			return err
		}
		if flags.verbose {
			fmt.Fprintf(os.Stderr, "Wrote %d stylesheet(s) to %s\n", len(resources), flags.assetsDir)
		}
	}

	return nil
}

// loadConfig loads the named config file, or defaults when none given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// renderNotebook renders a single notebook as one directive evaluation.
// The cells and language flags are folded into directive markup so the
// CLI accepts exactly the syntax pages use.
func renderNotebook(svc *nb2html.Service, flags *cliFlags, source string) (string, error) {
	markup := source
	if flags.cells != "" {
		markup += fmt.Sprintf(" cells[%s]", flags.cells)
	}
	if flags.language != "" {
		markup += fmt.Sprintf(" language[%s]", flags.language)
	}

	d, err := nb2html.ParseDirective(markup)
	if err != nil {
		return "", err
	}

	frag, err := svc.Render(flags.contentRoot, d)
	if err != nil {
		return "", err
	}
	return frag.Body, nil
}

// renderPage expands every thebe tag in a page file and restores the
// stash, producing the final page text.
func renderPage(svc *nb2html.Service, flags *cliFlags, pagePath string) (string, error) {
	data, err := os.ReadFile(pagePath) // #nosec G304 -- page path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	stash := nb2html.NewStash()
	registry := nb2html.NewRegistry()
	registry.Register("thebe", svc.Handler(flags.contentRoot))

	processed, err := registry.Process(string(data), stash)
	if err != nil {
		return "", err
	}
	return stash.Restore(processed), nil
}

func writeOutput(stdout io.Writer, path, html string) error {
	if path == "" {
		_, err := io.WriteString(stdout, html)
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil { // #nosec G306 -- rendered HTML is public site content
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func writeResources(dir string, resources map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating assets directory: %w", err)
	}
	for name, content := range resources {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- stylesheets are public site content
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
