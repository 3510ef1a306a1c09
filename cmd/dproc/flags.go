package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// formatFlags selects the export formats.
type formatFlags struct {
	html bool
	pdf  bool
	mdx  bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title  string
	author string
	date   string
	toc    bool
}

// browserFlags holds headless Chrome flags.
type browserFlags struct {
	timeout   string
	noSandbox bool
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common    commonFlags
	formats   formatFlags
	document  documentFlags
	browser   browserFlags
	assetPath string

	// changed reports whether a flag was set on the command line, so config
	// values only fill in what the user left out.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addFormatFlags adds format selection flags to a FlagSet.
func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.BoolVar(&f.html, "html", false, "write {base}.html")
	fs.BoolVar(&f.pdf, "pdf", false, "write {base}.pdf")
	fs.BoolVar(&f.mdx, "mdx", false, "write {base}.mdx")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default \"Report\")")
	fs.StringVar(&f.author, "author", "", "author byline")
	fs.StringVar(&f.date, "date", "", "MDX date: now, auto, auto:FORMAT, or literal")
	fs.BoolVar(&f.toc, "toc", false, "include a table of contents")
}

// addBrowserFlags adds headless browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, stderr io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &exportFlags{}

	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.formats)
	addDocumentFlags(fs, &f.document)
	addBrowserFlags(fs, &f.browser)
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding styles/ and templates/")

	fs.Usage = func() { printExportUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}

// configFlags holds flags for the config command.
type configFlags struct {
	config string
	json   bool
}

// parseConfigFlags parses config sub-command flags and returns positional args.
func parseConfigFlags(args []string, stderr io.Writer) (*configFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &configFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print as JSON")

	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether -v or --verbose appears before a "--".
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
