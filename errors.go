package nb2html

import (
	"errors"

	"github.com/alnah/go-nb2html/internal/highlight"
	"github.com/alnah/go-nb2html/internal/notebook"
)

// Sentinel errors for directive processing.
var (
	// ErrMalformedDirective indicates the directive text does not match
	// the grammar. The wrapped message carries the expected syntax.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrNotebookNotFound indicates the resolved notebook path does not
	// exist. The wrapped message carries the resolved path.
	ErrNotebookNotFound = errors.New("notebook file not found")

	// ErrUnsupportedFormat indicates the file content matches neither
	// known notebook schema. Re-exported so callers can match without
	// importing internal packages.
	ErrUnsupportedFormat = notebook.ErrUnsupportedFormat

	// ErrHighlightFailure indicates a lexer rejected a code cell. The
	// renderer recovers per-cell with a plain-text fallback, so this
	// surfaces only from direct highlighter use.
	ErrHighlightFailure = highlight.ErrHighlightFailure
)
