package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat indicates the file content matches neither known
// notebook schema.
var ErrUnsupportedFormat = errors.New("unsupported notebook format")

// Parse decodes the serialized contents of a notebook file. The flat
// v4 "cells" schema is tried first, then the v3 "worksheets" schema;
// ErrUnsupportedFormat is returned when neither matches structurally.
func Parse(data []byte) (*Document, error) {
	var probe struct {
		Cells      json.RawMessage `json:"cells"`
		Worksheets json.RawMessage `json:"worksheets"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	switch {
	case isJSONArray(probe.Cells):
		return parseV4(data)
	case isJSONArray(probe.Worksheets):
		return parseV3(data)
	default:
		return nil, fmt.Errorf("%w: no cells or worksheets field", ErrUnsupportedFormat)
	}
}

// isJSONArray reports whether raw holds a JSON array (not null/absent).
func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

// multiline accepts the string-or-array-of-strings form notebook files
// use for source and text fields, joining array parts verbatim.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*m = multiline(strings.Join(parts, ""))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = multiline(s)
	return nil
}

// v4 schema: flat cell list with mime-bundle outputs.

type v4Document struct {
	NBFormat int            `json:"nbformat"`
	Metadata map[string]any `json:"metadata"`
	Cells    []v4Cell       `json:"cells"`
}

type v4Cell struct {
	CellType       string     `json:"cell_type"`
	Source         multiline  `json:"source"`
	ExecutionCount *int       `json:"execution_count"`
	Outputs        []v4Output `json:"outputs"`
}

type v4Output struct {
	OutputType     string                     `json:"output_type"`
	Name           string                     `json:"name"`
	Text           multiline                  `json:"text"`
	Data           map[string]json.RawMessage `json:"data"`
	ExecutionCount *int                       `json:"execution_count"`
	EName          string                     `json:"ename"`
	Traceback      []string                   `json:"traceback"`
}

func parseV4(data []byte) (*Document, error) {
	var nb v4Document
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	doc := &Document{
		NBFormat: nb.NBFormat,
		Language: v4Language(nb.Metadata),
		Metadata: nb.Metadata,
		Cells:    make([]Cell, 0, len(nb.Cells)),
	}
	if doc.NBFormat == 0 {
		doc.NBFormat = 4
	}

	for _, c := range nb.Cells {
		cell := Cell{
			Type:           CellType(c.CellType),
			Source:         string(c.Source),
			ExecutionCount: c.ExecutionCount,
		}
		for _, o := range c.Outputs {
			cell.Outputs = append(cell.Outputs, v4NormalizeOutput(o))
		}
		doc.Cells = append(doc.Cells, cell)
	}
	return doc, nil
}

func v4NormalizeOutput(o v4Output) Output {
	out := Output{
		Type:           OutputType(o.OutputType),
		Name:           o.Name,
		Text:           string(o.Text),
		ExecutionCount: o.ExecutionCount,
	}
	if o.OutputType == "error" {
		out.Name = o.EName
		out.Text = strings.Join(o.Traceback, "\n")
	}
	for mime, raw := range o.Data {
		var payload multiline
		if err := json.Unmarshal(raw, &payload); err != nil {
			// Non-textual mime bundles (e.g. application/json objects)
			// have no HTML rendering here and are skipped.
			continue
		}
		switch mime {
		case "text/plain":
			out.Text = string(payload)
		case "text/html":
			out.HTML = string(payload)
		case "image/png":
			out.PNG = compactBase64(string(payload))
		case "image/jpeg":
			out.JPEG = compactBase64(string(payload))
		}
	}
	return out
}

// v4Language reads the kernel language from v4 metadata, preferring
// language_info.name over kernelspec.language.
func v4Language(metadata map[string]any) string {
	if lang := nestedString(metadata, "language_info", "name"); lang != "" {
		return lang
	}
	return nestedString(metadata, "kernelspec", "language")
}

// v3 schema: worksheets containing cells, with pyout/pyerr outputs.

type v3Document struct {
	NBFormat   int            `json:"nbformat"`
	Metadata   map[string]any `json:"metadata"`
	Worksheets []v3Worksheet  `json:"worksheets"`
}

type v3Worksheet struct {
	Cells []v3Cell `json:"cells"`
}

type v3Cell struct {
	CellType     string     `json:"cell_type"`
	Source       multiline  `json:"source"`
	Input        multiline  `json:"input"`
	Level        int        `json:"level"`
	Language     string     `json:"language"`
	PromptNumber *int       `json:"prompt_number"`
	Outputs      []v3Output `json:"outputs"`
}

type v3Output struct {
	OutputType   string    `json:"output_type"`
	Stream       string    `json:"stream"`
	Text         multiline `json:"text"`
	HTML         multiline `json:"html"`
	PNG          string    `json:"png"`
	JPEG         string    `json:"jpeg"`
	PromptNumber *int      `json:"prompt_number"`
	EName        string    `json:"ename"`
	Traceback    []string  `json:"traceback"`
}

func parseV3(data []byte) (*Document, error) {
	var nb v3Document
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	doc := &Document{
		NBFormat: nb.NBFormat,
		Metadata: nb.Metadata,
	}
	if doc.NBFormat == 0 {
		doc.NBFormat = 3
	}
	doc.Language = nestedString(nb.Metadata, "language")

	for _, ws := range nb.Worksheets {
		for _, c := range ws.Cells {
			cell := Cell{
				Type:           CellType(c.CellType),
				Source:         string(c.Source),
				Level:          c.Level,
				ExecutionCount: c.PromptNumber,
			}
			if c.CellType == "code" {
				cell.Source = string(c.Input)
				if doc.Language == "" {
					doc.Language = c.Language
				}
			}
			for _, o := range c.Outputs {
				cell.Outputs = append(cell.Outputs, v3NormalizeOutput(o))
			}
			doc.Cells = append(doc.Cells, cell)
		}
	}
	return doc, nil
}

func v3NormalizeOutput(o v3Output) Output {
	out := Output{
		Type:           OutputType(o.OutputType),
		Name:           o.Stream,
		Text:           string(o.Text),
		HTML:           string(o.HTML),
		PNG:            compactBase64(o.PNG),
		JPEG:           compactBase64(o.JPEG),
		ExecutionCount: o.PromptNumber,
	}
	switch o.OutputType {
	case "pyout":
		out.Type = OutputResult
	case "pyerr":
		out.Type = OutputError
		out.Name = o.EName
		out.Text = strings.Join(o.Traceback, "\n")
	}
	return out
}

// nestedString walks nested string-keyed maps and returns the string
// at the end of the key path, or "" if any step is missing.
func nestedString(m map[string]any, path ...string) string {
	var v any = m
	for _, key := range path {
		inner, ok := v.(map[string]any)
		if !ok {
			return ""
		}
		v = inner[key]
	}
	s, _ := v.(string)
	return s
}

// compactBase64 strips the line breaks notebook files embed in base64
// image payloads so they can be used in data URIs directly.
func compactBase64(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
}
