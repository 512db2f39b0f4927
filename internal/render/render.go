// Package render converts notebook cells to an HTML fragment. Narrative
// cells go through goldmark; code cells go through the chroma-backed
// highlighter, with recorded outputs embedded verbatim.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-nb2html/internal/highlight"
	"github.com/alnah/go-nb2html/internal/notebook"
)

// ErrRender indicates a cell could not be converted to HTML.
var ErrRender = errors.New("cell rendering failed")

// ansiEscapes matches the terminal color sequences Jupyter records in
// error tracebacks.
var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Highlighter abstracts code-cell highlighting so rendering can
// degrade per cell when a lexer rejects its source.
type Highlighter interface {
	Highlight(source, language string) (string, error)
}

// Compile-time interface check.
var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer converts notebook documents to HTML cell by cell.
type Renderer struct {
	md goldmark.Markdown
	hl Highlighter
}

// New creates a Renderer that highlights code with hl.
func New(hl Highlighter) *Renderer {
	return &Renderer{md: newMarkdown(), hl: hl}
}

// Fragment renders every cell of doc in order and returns the
// concatenated HTML. A non-nil language overrides the notebook's own
// kernel language for code highlighting; an explicit empty override
// selects the highlighter's default lexer.
func (r *Renderer) Fragment(doc *notebook.Document, language *string) (string, error) {
	lang := doc.Language
	if language != nil {
		lang = *language
	}

	var buf strings.Builder
	for _, cell := range doc.Cells {
		if err := r.renderCell(&buf, cell, lang); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *Renderer) renderCell(buf *strings.Builder, cell notebook.Cell, language string) error {
	switch cell.Type {
	case notebook.CellMarkdown:
		return r.renderMarkdownCell(buf, cell.Source)
	case notebook.CellHeading:
		// Heading sources may span lines; the whole text is one heading.
		text := strings.Join(strings.Fields(cell.Source), " ")
		heading := strings.Repeat("#", headingLevel(cell.Level)) + " " + text
		return r.renderMarkdownCell(buf, heading)
	case notebook.CellRaw:
		// Raw cells are author-controlled passthrough content.
		buf.WriteString(cell.Source)
		return nil
	case notebook.CellCode:
		r.renderCodeCell(buf, cell, language)
		return nil
	default:
		return fmt.Errorf("%w: unknown cell type %q", ErrRender, cell.Type)
	}
}

func (r *Renderer) renderMarkdownCell(buf *strings.Builder, source string) error {
	buf.WriteString(`<div class="cell text_cell">` + "\n")
	var body bytes.Buffer
	if err := r.md.Convert([]byte(source), &body); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	buf.Write(body.Bytes())
	buf.WriteString("</div>\n")
	return nil
}

func (r *Renderer) renderCodeCell(buf *strings.Builder, cell notebook.Cell, language string) {
	buf.WriteString(`<div class="cell code_cell">` + "\n")
	buf.WriteString(`<div class="input_area">` + "\n")
	if cell.ExecutionCount != nil {
		fmt.Fprintf(buf, `<div class="prompt input_prompt">In&nbsp;[%d]:</div>`+"\n", *cell.ExecutionCount)
	}

	highlighted, err := r.hl.Highlight(cell.Source, language)
	if err != nil {
		// Highlighting failure degrades this one cell to plain text.
		highlighted = plainCode(cell.Source)
	}
	buf.WriteString(highlighted)
	buf.WriteString("\n</div>\n")

	for _, out := range cell.Outputs {
		renderOutput(buf, out)
	}
	buf.WriteString("</div>\n")
}

func renderOutput(buf *strings.Builder, out notebook.Output) {
	switch out.Type {
	case notebook.OutputStream:
		name := out.Name
		if name == "" {
			name = "stdout"
		}
		fmt.Fprintf(buf, `<div class="output_area output_stream output_%s"><pre>%s</pre></div>`+"\n",
			name, html.EscapeString(out.Text))

	case notebook.OutputError:
		text := ansiEscapes.ReplaceAllString(out.Text, "")
		fmt.Fprintf(buf, `<div class="output_area output_error"><pre>%s</pre></div>`+"\n",
			html.EscapeString(text))

	case notebook.OutputResult, notebook.OutputDisplay:
		buf.WriteString(`<div class="output_area">` + "\n")
		if out.Type == notebook.OutputResult && out.ExecutionCount != nil {
			fmt.Fprintf(buf, `<div class="prompt output_prompt">Out[%d]:</div>`+"\n", *out.ExecutionCount)
		}
		switch {
		case out.HTML != "":
			buf.WriteString(out.HTML)
			buf.WriteString("\n")
		case out.PNG != "":
			fmt.Fprintf(buf, `<img src="data:image/png;base64,%s" />`+"\n", out.PNG)
		case out.JPEG != "":
			fmt.Fprintf(buf, `<img src="data:image/jpeg;base64,%s" />`+"\n", out.JPEG)
		case out.Text != "":
			fmt.Fprintf(buf, `<pre class="output_text">%s</pre>`+"\n", html.EscapeString(out.Text))
		}
		buf.WriteString("</div>\n")
	}
}

// plainCode is the unhighlighted fallback for cells the highlighter
// rejects, kept under the same CSS class as highlighted output.
func plainCode(source string) string {
	return `<div class="` + highlight.CSSClass + `"><pre>` + html.EscapeString(source) + `</pre></div>`
}

// headingLevel clamps v3 heading levels to the h1..h6 range.
func headingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
