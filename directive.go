package nb2html

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Syntax is the expected form of a thebe directive, included in
// ErrMalformedDirective messages for user display.
const Syntax = "{% thebe /path/to/notebook.ipynb [ cells[start:end] ] [ language[lang] ] %}"

// Clause patterns. Each clause must be one contiguous bracketed token.
var (
	cellsClause    = regexp.MustCompile(`^cells\[(-?[0-9]*):(-?[0-9]*)\]$`)
	languageClause = regexp.MustCompile(`^language\[([a-z0-9+\-]*)\]$`)
)

// Directive is the parsed, structured form of one thebe tag occurrence.
type Directive struct {
	Source   string  // notebook path relative to the notebook directory
	Start    int     // index of the first cell to include
	End      *int    // one past the last cell, nil = end of document
	Language *string // highlighting override, nil = notebook's own language
}

// ParseDirective parses the markup between "{% thebe" and "%}" into a
// Directive. The path comes first; the cells and language clauses are
// optional, may appear in either order, and each may appear at most
// once. No range validation is performed: out-of-order or out-of-bounds
// indices follow slice semantics downstream.
func ParseDirective(markup string) (Directive, error) {
	fields := strings.Fields(markup)
	if len(fields) == 0 {
		return Directive{}, malformed(markup)
	}

	source := fields[0]
	if cellsClause.MatchString(source) || languageClause.MatchString(source) {
		// A clause token in path position means the path is missing.
		return Directive{}, malformed(markup)
	}
	d := Directive{Source: source}

	var seenCells, seenLanguage bool
	for _, token := range fields[1:] {
		switch {
		case !seenCells && cellsClause.MatchString(token):
			seenCells = true
			m := cellsClause.FindStringSubmatch(token)
			start, end, err := parseRange(m[1], m[2])
			if err != nil {
				return Directive{}, malformed(markup)
			}
			d.Start, d.End = start, end

		case !seenLanguage && languageClause.MatchString(token):
			seenLanguage = true
			lang := languageClause.FindStringSubmatch(token)[1]
			d.Language = &lang

		default:
			return Directive{}, malformed(markup)
		}
	}

	return d, nil
}

// parseRange converts the textual start/end of a cells clause. Absent
// digits mean "from the beginning" and "to the end" respectively.
func parseRange(startText, endText string) (int, *int, error) {
	start := 0
	if startText != "" {
		n, err := strconv.Atoi(startText)
		if err != nil {
			return 0, nil, err
		}
		start = n
	}

	var end *int
	if endText != "" {
		n, err := strconv.Atoi(endText)
		if err != nil {
			return 0, nil, err
		}
		end = &n
	}

	return start, end, nil
}

func malformed(markup string) error {
	return fmt.Errorf("%w: %q, expected syntax: %s", ErrMalformedDirective, markup, Syntax)
}
