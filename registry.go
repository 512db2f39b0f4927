package nb2html

import (
	"fmt"
	"regexp"
	"strings"
)

// TagHandler renders the markup of one tag occurrence into final HTML.
type TagHandler func(markup string) (string, error)

// tagPattern matches liquid-style tag occurrences: {% name markup %}.
var tagPattern = regexp.MustCompile(`\{%\s*([a-zA-Z][a-zA-Z0-9_]*)\s+(.*?)\s*%\}`)

// Registry maps tag names to handlers. Populate it at startup and hand
// it to the page-processing pipeline by reference; nothing is
// registered process-wide.
type Registry struct {
	handlers map[string]TagHandler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]TagHandler)}
}

// Register associates a tag name with a handler, replacing any
// previous handler for that name.
func (r *Registry) Register(name string, handler TagHandler) {
	r.handlers[name] = handler
}

// Process expands every registered tag occurrence in page: the handler
// runs, its HTML is stored in the stash, and the stash token replaces
// the tag in the page text. Occurrences of unregistered tags are left
// untouched. The first handler error aborts processing, leaving the
// rest of the page unmodified.
func (r *Registry) Process(page string, stash *Stash) (string, error) {
	// ReplaceAllStringFunc cannot propagate errors, so matches are
	// walked manually.
	var out strings.Builder
	last := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(page, -1) {
		name := page[m[2]:m[3]]
		markup := page[m[4]:m[5]]

		handler, ok := r.handlers[name]
		if !ok {
			continue
		}

		html, err := handler(markup)
		if err != nil {
			return "", fmt.Errorf("tag %q: %w", name, err)
		}

		out.WriteString(page[last:m[0]])
		out.WriteString(stash.Store(html))
		last = m[1]
	}
	out.WriteString(page[last:])
	return out.String(), nil
}
