// Package notebook parses Jupyter notebook files into an ordered cell
// model and selects cell ranges for rendering. Both historical on-disk
// schemas are accepted: the v3 layout (worksheets containing cells) and
// the v4 layout (flat cell list). Parsing normalizes both into the same
// Document shape.
package notebook

// CellType distinguishes the kinds of cells a notebook can hold.
type CellType string

// Cell type constants, matching the cell_type values in notebook files.
const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
	CellHeading  CellType = "heading"
)

// OutputType distinguishes the kinds of recorded code-cell output.
type OutputType string

// Output type constants, using the v4 schema names. The v3 names
// (pyout, pyerr) are mapped onto these during parsing.
const (
	OutputStream  OutputType = "stream"
	OutputResult  OutputType = "execute_result"
	OutputDisplay OutputType = "display_data"
	OutputError   OutputType = "error"
)

// Document is a parsed notebook: an ordered cell sequence plus
// document-level metadata.
type Document struct {
	NBFormat int            // major schema version found in the file
	Language string         // kernel language, empty if the file does not record one
	Metadata map[string]any // document-level metadata, preserved as-is
	Cells    []Cell
}

// Cell is one unit of a notebook: narrative text or code plus its
// recorded outputs. Cells have no identity beyond their position in
// the owning document.
type Cell struct {
	Type           CellType
	Source         string
	Level          int  // heading cells only (v3 schema)
	ExecutionCount *int // code cells, nil when never executed
	Outputs        []Output
}

// Output is one recorded result of executing a code cell, normalized
// across schema versions. At most one of Text, HTML, PNG, JPEG is the
// primary payload; richer mime bundles keep text/plain in Text as the
// fallback representation.
type Output struct {
	Type           OutputType
	Name           string // stream name ("stdout", "stderr") or error name
	Text           string // text/plain payload, stream text, or traceback
	HTML           string // text/html payload, embedded verbatim
	PNG            string // base64-encoded image/png payload
	JPEG           string // base64-encoded image/jpeg payload
	ExecutionCount *int
}

// Clone returns a structurally independent copy of d. Mutating the
// copy never affects the original.
func (d *Document) Clone() *Document {
	out := &Document{
		NBFormat: d.NBFormat,
		Language: d.Language,
		Metadata: cloneMetadata(d.Metadata),
		Cells:    make([]Cell, len(d.Cells)),
	}
	for i, c := range d.Cells {
		out.Cells[i] = c.clone()
	}
	return out
}

func (c Cell) clone() Cell {
	out := c
	if c.ExecutionCount != nil {
		n := *c.ExecutionCount
		out.ExecutionCount = &n
	}
	out.Outputs = make([]Output, len(c.Outputs))
	for i, o := range c.Outputs {
		out.Outputs[i] = o.clone()
	}
	return out
}

func (o Output) clone() Output {
	out := o
	if o.ExecutionCount != nil {
		n := *o.ExecutionCount
		out.ExecutionCount = &n
	}
	return out
}

// cloneMetadata deep-copies the maps and slices JSON decoding produces.
// Scalar values are immutable and shared.
func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMetadata(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
