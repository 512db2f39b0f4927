// Package highlight renders notebook source code as HTML using chroma,
// tagged with a CSS class distinct from the site's ordinary highlighted
// code blocks so stylesheets can target notebook output separately.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlightFailure indicates the lexer or formatter rejected a code
// cell. Callers are expected to recover with a plain-text rendering of
// that cell rather than aborting the whole notebook.
var ErrHighlightFailure = errors.New("syntax highlighting failed")

// CSSClass wraps all highlighted notebook code, keeping it styleable
// independently from the site's regular "highlight" blocks.
const CSSClass = "highlight-ipynb"

// DefaultLanguage is the notebook-native lexer used when no language
// is known or the requested one has no lexer.
const DefaultLanguage = "python"

// Highlighter renders source text as class-based chroma HTML.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter using the named chroma style. An unknown
// or empty style name falls back to chroma's default style.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight returns source marked up as HTML for the given language,
// wrapped in a CSSClass container. An empty or unknown language falls
// back to DefaultLanguage.
func (h *Highlighter) Highlight(source, language string) (string, error) {
	if language == "" {
		language = DefaultLanguage
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Get(DefaultLanguage)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightFailure, err)
	}

	var buf strings.Builder
	buf.WriteString(`<div class="` + CSSClass + `">`)
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightFailure, err)
	}
	buf.WriteString(`</div>`)
	return buf.String(), nil
}

// CSS returns the stylesheet backing the class-based markup Highlight
// emits, for deduplication by the page template.
func (h *Highlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightFailure, err)
	}
	return buf.String(), nil
}
