// Package mdexport exports a markdown document to HTML, PDF and MDX.
//
// # Quick Start
//
//	exp, err := mdexport.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcomes, err := exp.Export(ctx, "notes/report.md",
//	    []mdexport.Format{mdexport.FormatHTML, mdexport.FormatPDF},
//	    mdexport.Options{Title: "Weekly Report", IncludeTOC: true},
//	)
//	if err != nil {
//	    log.Fatal(err) // nothing was written
//	}
//	for _, o := range outcomes {
//	    fmt.Println(o.Target.Path, o.Err)
//	}
//
// Outputs are written next to the input: notes/report.html and
// notes/report.pdf. Formats are independent: a PDF failure (no Chrome, page
// timeout) is recorded in its Outcome while HTML and MDX are still written.
//
// # Formats
//
//   - HTML: goldmark with GFM tables, task lists, footnotes and highlighted
//     code, sanitized with bluemonday, wrapped in a styled page. Optional
//     table of contents for heading levels 1-3 and an author line.
//   - PDF: the HTML page printed by headless Chrome (go-rod) on A4 with 1cm
//     margins, validated with pdfcpu. The intermediate {base}.temp.html is
//     always removed and the browser is always shut down.
//   - MDX: the markdown unchanged, after a front matter block with title,
//     optional author and date.
//
// # Configuration
//
//	exp, err := mdexport.NewExporter(
//	    mdexport.WithTimeout(2*time.Minute),
//	    mdexport.WithLogger(slog.Default()),
//	    mdexport.WithBrowser("/usr/bin/chromium", true),
//	    mdexport.WithAssetPath("/path/to/custom/assets"),
//	)
//
// The renderers are also usable on their own through NewHTMLRenderer,
// NewPDFRenderer and NewMDXRenderer.
//
// # Errors
//
// Export returns ErrNoFormatSpecified, ErrUnknownFormat, ErrTargetIsInput or
// ErrReadMarkdown when the run cannot start. Per-format failures are
// *RenderError values that unwrap to sentinels such as ErrBrowserConnect,
// ErrPageLoad, ErrInvalidPDF or ErrWriteOutput.
package mdexport
