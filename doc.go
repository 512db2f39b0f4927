// Package nb2html renders slices of Jupyter notebooks as HTML fragments
// for embedding in statically generated pages.
//
// # Quick Start
//
// Create a service over the site settings, parse a directive, and
// render it against the content root:
//
//	svc, err := nb2html.New(settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, err := nb2html.ParseDirective("demo.ipynb cells[2:5] language[python]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frag, err := svc.Render("content", d)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// frag.Body is the HTML fragment; frag.Resources carries the
//	// highlighting stylesheet for the page template to deduplicate.
//
// # Directive Syntax
//
// A directive is the markup between "{% thebe" and "%}":
//
//	<path> [cells[<start>:<end>]] [language[<lang>]]
//
// The path is relative to the notebook directory under the content
// root. The cells clause selects a half-open cell range with the usual
// slice semantics (negative indices count from the end, out-of-range
// indices clamp). The language clause overrides the notebook's own
// kernel language for highlighting.
//
// # Page Processing
//
// For whole pages, register the service's handler with a Registry and
// let the stash protect finished fragments from later text passes:
//
//	stash := nb2html.NewStash()
//	reg := nb2html.NewRegistry()
//	reg.Register("thebe", svc.Handler("content"))
//
//	page, err := reg.Process(pageSource, stash)
//	// ... run the rest of the page pipeline on page ...
//	final := stash.Restore(page)
//
// Each directive occurrence is processed independently; the notebook
// file is re-read and re-parsed every time, and nothing is cached.
//
// # Template Overrides
//
// The fragment wrapper template (templates/notebook.html) and default
// stylesheet are embedded. Settings.PluginPaths lists directories
// searched, in order, for <name>.html and <name>.css overrides before
// the embedded versions are used.
package nb2html
