package nb2html

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/alnah/go-nb2html/internal/assets"
	"github.com/alnah/go-nb2html/internal/highlight"
	"github.com/alnah/go-nb2html/internal/notebook"
	"github.com/alnah/go-nb2html/internal/render"
)

// Service orchestrates the notebook-to-HTML pipeline: load, select the
// cell range, render cells, and frame the result with the fragment
// template. It is stateless across directives; every occurrence
// re-reads and re-parses the notebook file.
type Service struct {
	settings     Settings
	templateName string
	template     *template.Template
	resolver     *assets.Resolver
	highlighter  *highlight.Highlighter
	renderer     *render.Renderer
}

// fragmentData feeds the fragment wrapper template. Body is already
// final HTML and must not be escaped again.
type fragmentData struct {
	Body template.HTML
}

// New creates a Service over the given site settings.
// Use options to customize behavior (e.g., WithTemplateName).
func New(settings Settings, opts ...Option) (*Service, error) {
	s := &Service{
		settings:     settings,
		templateName: defaultTemplateName,
	}

	for _, opt := range opts {
		opt(s)
	}

	resolver, err := assets.NewResolver(settings.PluginPaths())
	if err != nil {
		return nil, fmt.Errorf("resolving plugin paths: %w", err)
	}
	s.resolver = resolver

	text, err := resolver.LoadTemplate(s.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading fragment template: %w", err)
	}
	tpl, err := template.New(s.templateName).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment template: %w", err)
	}
	s.template = tpl

	s.highlighter = highlight.New(settings.HighlightStyle())
	s.renderer = render.New(s.highlighter)

	return s, nil
}

// Render evaluates one directive against the content root and returns
// the HTML fragment plus auxiliary resources. The notebook path
// resolves as contentRoot/notebookDir/d.Source.
func (s *Service) Render(contentRoot string, d Directive) (*RenderedFragment, error) {
	path := filepath.Join(contentRoot, s.notebookDir(), d.Source)

	data, err := os.ReadFile(path) // #nosec G304 -- path is site-author content
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotebookNotFound, path)
		}
		return nil, fmt.Errorf("reading notebook: %w", err)
	}

	doc, err := notebook.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	doc = doc.Slice(d.Start, d.End)

	body, err := s.renderer.Fragment(doc, d.Language)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := s.template.Execute(&buf, fragmentData{Body: template.HTML(body)}); err != nil { // #nosec G203 -- body is renderer output
		return nil, fmt.Errorf("executing fragment template: %w", err)
	}

	resources, err := s.Resources()
	if err != nil {
		return nil, err
	}

	return &RenderedFragment{Body: buf.String(), Resources: resources}, nil
}

// Resources returns the stylesheets fragments depend on, keyed by file
// name, so the page template can emit each once per page.
func (s *Service) Resources() (map[string]string, error) {
	highlightCSS, err := s.highlighter.CSS()
	if err != nil {
		return nil, fmt.Errorf("building highlight stylesheet: %w", err)
	}

	notebookCSS, err := s.resolver.LoadStyle(s.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading fragment stylesheet: %w", err)
	}

	resources := map[string]string{"highlight.css": highlightCSS}
	resources[s.templateName+".css"] = notebookCSS
	return resources, nil
}

// Handler adapts the service to a Registry TagHandler bound to one
// content root: parse the markup, render, hand back the fragment body.
func (s *Service) Handler(contentRoot string) TagHandler {
	return func(markup string) (string, error) {
		d, err := ParseDirective(markup)
		if err != nil {
			return "", err
		}
		frag, err := s.Render(contentRoot, d)
		if err != nil {
			return "", err
		}
		return frag.Body, nil
	}
}

func (s *Service) notebookDir() string {
	if dir := s.settings.NotebookDir(); dir != "" {
		return dir
	}
	return DefaultNotebookDir
}
