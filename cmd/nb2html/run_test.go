package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testNotebook = `{
  "nbformat": 4,
  "metadata": {"language_info": {"name": "python"}},
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Demo"]},
    {"cell_type": "code", "execution_count": 1, "metadata": {}, "source": ["print(\"hi\")"],
     "outputs": [{"output_type": "stream", "name": "stdout", "text": ["hi\n"]}]}
  ]
}`

// writeContentTree lays out <dir>/content/notebooks/demo.ipynb and
// returns the content root.
func writeContentTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	dir := filepath.Join(root, "notebooks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "demo.ipynb"), []byte(testNotebook), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run([]string{"nb2html", "--version"}, &out); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.TrimSpace(out.String()) != Version {
		t.Errorf("output = %q, want version %q", out.String(), Version)
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run([]string{"nb2html", "--help"}, &out); err != nil {
		t.Fatalf("run --help error: %v", err)
	}
}

func TestRun_RenderNotebookToStdout(t *testing.T) {
	t.Parallel()

	root := writeContentTree(t)

	var out bytes.Buffer
	args := []string{"nb2html", "--content-root", root, "--cells", "1:", "--language", "python", "demo.ipynb"}
	if err := run(args, &out); err != nil {
		t.Fatalf("run error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `<div class="notebook">`) {
		t.Errorf("output missing fragment wrapper:\n%s", got)
	}
	if strings.Contains(got, "<h1") {
		t.Errorf("cells[1:] still renders the markdown cell:\n%s", got)
	}
}

func TestRun_RenderNotebookToFile(t *testing.T) {
	t.Parallel()

	root := writeContentTree(t)
	outPath := filepath.Join(t.TempDir(), "demo.html")
	assetsDir := filepath.Join(t.TempDir(), "css")

	args := []string{"nb2html", "--content-root", root, "-o", outPath, "--assets-dir", assetsDir, "demo.ipynb"}
	if err := run(args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run error: %v", err)
	}

	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(html), "highlight-ipynb") {
		t.Errorf("output file missing highlighted code:\n%s", html)
	}

	css, err := os.ReadFile(filepath.Join(assetsDir, "highlight.css"))
	if err != nil {
		t.Fatalf("reading highlight.css: %v", err)
	}
	if !strings.Contains(string(css), ".chroma") {
		t.Errorf("highlight.css = %q", css)
	}
	if _, err := os.Stat(filepath.Join(assetsDir, "notebook.css")); err != nil {
		t.Errorf("notebook.css not written: %v", err)
	}
}

func TestRun_RenderPage(t *testing.T) {
	t.Parallel()

	root := writeContentTree(t)
	pagePath := filepath.Join(root, "post.md")
	page := "intro\n\n{% thebe demo.ipynb %}\n\noutro\n"
	if err := os.WriteFile(pagePath, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	args := []string{"nb2html", "--page", "--content-root", root, pagePath}
	if err := run(args, &out); err != nil {
		t.Fatalf("run error: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "intro\n") || !strings.HasSuffix(got, "outro\n") {
		t.Errorf("page text disturbed:\n%s", got)
	}
	if !strings.Contains(got, `<div class="notebook">`) {
		t.Errorf("directive not expanded:\n%s", got)
	}
	if strings.Contains(got, "{% thebe") {
		t.Errorf("directive text left in page:\n%s", got)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	root := writeContentTree(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no positional argument", args: []string{"nb2html"}},
		{name: "two positional arguments", args: []string{"nb2html", "a.ipynb", "b.ipynb"}},
		{name: "missing notebook", args: []string{"nb2html", "--content-root", root, "absent.ipynb"}},
		{name: "bad cells flag", args: []string{"nb2html", "--content-root", root, "--cells", "x", "demo.ipynb"}},
		{name: "missing config file", args: []string{"nb2html", "-c", "absent.yaml", "demo.ipynb"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := run(tt.args, &bytes.Buffer{}); err == nil {
				t.Fatal("run succeeded, want error")
			}
		})
	}
}
