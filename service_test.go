package nb2html

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testSettings is a minimal Settings implementation for tests.
type testSettings struct {
	dir   string
	paths []string
	style string
}

func (s testSettings) NotebookDir() string    { return s.dir }
func (s testSettings) PluginPaths() []string  { return s.paths }
func (s testSettings) HighlightStyle() string { return s.style }

const demoV4 = `{
  "nbformat": 4,
  "metadata": {"language_info": {"name": "python"}},
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Demo\n", "\n", "Narrative text."]},
    {"cell_type": "code", "execution_count": 1, "metadata": {}, "source": ["print(\"hello\")"],
     "outputs": [{"output_type": "stream", "name": "stdout", "text": ["hello\n"]}]},
    {"cell_type": "code", "execution_count": 2, "metadata": {}, "source": ["1 + 1"],
     "outputs": [{"output_type": "execute_result", "execution_count": 2, "metadata": {},
                  "data": {"text/plain": ["2"]}}]}
  ]
}`

const demoV3 = `{
  "nbformat": 3,
  "metadata": {"language": "python"},
  "worksheets": [{"cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Demo\n", "\n", "Narrative text."]},
    {"cell_type": "code", "language": "python", "prompt_number": 1, "input": ["print(\"hello\")"],
     "outputs": [{"output_type": "stream", "stream": "stdout", "text": ["hello\n"]}]},
    {"cell_type": "code", "language": "python", "prompt_number": 2, "input": ["1 + 1"],
     "outputs": [{"output_type": "pyout", "prompt_number": 2, "text": ["2"]}]}
  ]}]
}`

// writeNotebook lays out contentRoot/notebooks/<name> and returns the
// content root.
func writeNotebook(t *testing.T, name, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "notebooks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating notebook dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing notebook: %v", err)
	}
	return root
}

func newTestService(t *testing.T, settings Settings, opts ...Option) *Service {
	t.Helper()
	svc, err := New(settings, opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return svc
}

func TestService_Render(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "demo.ipynb", demoV4)
	svc := newTestService(t, testSettings{})

	frag, err := svc.Render(root, Directive{Source: "demo.ipynb"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	for _, want := range []string{
		`<div class="notebook">`,
		`<div class="cell text_cell">`,
		"<h1",
		"Demo",
		"highlight-ipynb",
		"In&nbsp;[1]:",
		"output_stream output_stdout",
		"hello",
		"Out[2]:",
	} {
		if !strings.Contains(frag.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, frag.Body)
		}
	}

	if css := frag.Resources["highlight.css"]; !strings.Contains(css, ".chroma") {
		t.Errorf("highlight.css = %q, want chroma selectors", css)
	}
	if css := frag.Resources["notebook.css"]; !strings.Contains(css, ".notebook") {
		t.Errorf("notebook.css = %q, want notebook selectors", css)
	}
}

func TestService_RenderNotFound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc := newTestService(t, testSettings{})

	_, err := svc.Render(root, Directive{Source: "absent.ipynb"})
	if !errors.Is(err, ErrNotebookNotFound) {
		t.Fatalf("Render = %v, want ErrNotebookNotFound", err)
	}

	resolved := filepath.Join(root, "notebooks", "absent.ipynb")
	if !strings.Contains(err.Error(), resolved) {
		t.Errorf("error %q does not carry the resolved path %q", err, resolved)
	}
}

func TestService_RenderUnsupportedFormat(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "junk.ipynb", `{"not": "a notebook"}`)
	svc := newTestService(t, testSettings{})

	_, err := svc.Render(root, Directive{Source: "junk.ipynb"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Render = %v, want ErrUnsupportedFormat", err)
	}
}

func TestService_FullRangeEqualsNoRange(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "demo.ipynb", demoV4)
	svc := newTestService(t, testSettings{})

	plain, err := svc.Render(root, Directive{Source: "demo.ipynb"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	// cells[:] parses to start=0, end=nil, same as no clause at all.
	ranged, err := svc.Render(root, mustParse(t, "demo.ipynb cells[:]"))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if plain.Body != ranged.Body {
		t.Errorf("cells[:] body differs from no-range body")
	}
}

func TestService_CellSelection(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "demo.ipynb", demoV4)
	svc := newTestService(t, testSettings{})

	tests := []struct {
		name    string
		markup  string
		want    []string
		wantNot []string
	}{
		{
			name:    "empty range keeps only the frame",
			markup:  "demo.ipynb cells[0:0]",
			wantNot: []string{"text_cell", "code_cell"},
		},
		{
			name:    "last two cells",
			markup:  "demo.ipynb cells[-2:]",
			want:    []string{"In&nbsp;[1]:", "Out[2]:"},
			wantNot: []string{"text_cell"},
		},
		{
			name:    "drop the last cell",
			markup:  "demo.ipynb cells[:-1]",
			want:    []string{"text_cell", "In&nbsp;[1]:"},
			wantNot: []string{"Out[2]:"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			frag, err := svc.Render(root, mustParse(t, tt.markup))
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(frag.Body, want) {
					t.Errorf("Body missing %q:\n%s", want, frag.Body)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(frag.Body, not) {
					t.Errorf("Body unexpectedly contains %q:\n%s", not, frag.Body)
				}
			}
		})
	}
}

func TestService_SchemaVariantsRenderIdentically(t *testing.T) {
	t.Parallel()

	rootV4 := writeNotebook(t, "demo.ipynb", demoV4)
	rootV3 := writeNotebook(t, "demo.ipynb", demoV3)
	svc := newTestService(t, testSettings{})

	fragV4, err := svc.Render(rootV4, Directive{Source: "demo.ipynb"})
	if err != nil {
		t.Fatalf("Render v4 error: %v", err)
	}
	fragV3, err := svc.Render(rootV3, Directive{Source: "demo.ipynb"})
	if err != nil {
		t.Fatalf("Render v3 error: %v", err)
	}

	if fragV4.Body != fragV3.Body {
		t.Errorf("equivalent notebooks render differently:\nv4:\n%s\nv3:\n%s", fragV4.Body, fragV3.Body)
	}
}

func TestService_CustomNotebookDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "published")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "demo.ipynb"), []byte(demoV4), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, testSettings{dir: "published"})
	if _, err := svc.Render(root, Directive{Source: "demo.ipynb"}); err != nil {
		t.Fatalf("Render error: %v", err)
	}
}

func TestService_TemplateOverride(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "demo.ipynb", demoV4)

	pluginDir := t.TempDir()
	override := `<article class="nb">{{.Body}}</article>`
	if err := os.WriteFile(filepath.Join(pluginDir, "notebook.html"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, testSettings{paths: []string{pluginDir}})

	frag, err := svc.Render(root, Directive{Source: "demo.ipynb"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.HasPrefix(frag.Body, `<article class="nb">`) {
		t.Errorf("override template not used:\n%s", frag.Body)
	}
}

func TestService_HandlerWithRegistry(t *testing.T) {
	t.Parallel()

	root := writeNotebook(t, "demo.ipynb", demoV4)
	svc := newTestService(t, testSettings{})

	stash := NewStash()
	registry := NewRegistry()
	registry.Register("thebe", svc.Handler(root))

	page := "before\n{% thebe demo.ipynb cells[1:2] %}\nafter"
	processed, err := registry.Process(page, stash)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if strings.Contains(processed, "<div") {
		t.Errorf("fragment not stashed: %q", processed)
	}

	final := stash.Restore(processed)
	if !strings.Contains(final, `<div class="notebook">`) || !strings.Contains(final, "In&nbsp;[1]:") {
		t.Errorf("restored page missing fragment:\n%s", final)
	}
	if !strings.HasPrefix(final, "before\n") || !strings.HasSuffix(final, "\nafter") {
		t.Errorf("surrounding page content disturbed:\n%s", final)
	}
}

func TestService_HandlerMalformedMarkup(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSettings{})
	handler := svc.Handler(t.TempDir())

	if _, err := handler("cells[1:2]"); !errors.Is(err, ErrMalformedDirective) {
		t.Fatalf("handler = %v, want ErrMalformedDirective", err)
	}
}

func mustParse(t *testing.T, markup string) Directive {
	t.Helper()
	d, err := ParseDirective(markup)
	if err != nil {
		t.Fatalf("ParseDirective(%q) error: %v", markup, err)
	}
	return d
}
