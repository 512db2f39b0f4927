package nb2html

import "github.com/alnah/go-nb2html/internal/config"

// Settings provides the site-build configuration the renderer consumes.
// config.Config satisfies it; tests may supply their own.
type Settings interface {
	// NotebookDir is the subdirectory of the content root where
	// notebook files live. Empty selects the default ("notebooks").
	NotebookDir() string

	// PluginPaths lists directories searched, in order, for template
	// and stylesheet overrides before the embedded defaults.
	PluginPaths() []string

	// HighlightStyle names the chroma style used for code cells.
	// Empty selects the chroma fallback style.
	HighlightStyle() string
}

// DefaultNotebookDir is used when Settings.NotebookDir is empty.
const DefaultNotebookDir = config.DefaultNotebookDir

// RenderedFragment is the result of one directive evaluation.
type RenderedFragment struct {
	Body      string            // HTML fragment, ready for stashing
	Resources map[string]string // auxiliary assets keyed by file name (stylesheets)
}

// Option configures a Service.
type Option func(*Service)

// defaultTemplateName is the fragment wrapper template used when no
// override is configured.
const defaultTemplateName = "notebook"

// WithTemplateName selects a different fragment wrapper template,
// resolved through the same plugin-path search as the default.
func WithTemplateName(name string) Option {
	if name == "" {
		panic("nb2html: WithTemplateName name must be non-empty")
	}
	return func(s *Service) {
		s.templateName = name
	}
}
