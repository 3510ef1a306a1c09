package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dproc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export a markdown report to HTML, PDF and MDX")
	fmt.Fprintln(w, "  config     Show the effective configuration")
	fmt.Fprintln(w, "  doctor     Check system configuration for PDF export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'dproc help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dproc export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a markdown file. Each selected format is written beside the")
	fmt.Fprintln(w, "input as {base}.html, {base}.pdf or {base}.mdx. Formats fail")
	fmt.Fprintln(w, "independently; the exit status is non-zero only when all of them fail.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats (at least one, or export.formats in the config):")
	fmt.Fprintln(w, "      --html                Standalone styled HTML page")
	fmt.Fprintln(w, "      --pdf                 A4 PDF printed by headless Chrome")
	fmt.Fprintln(w, "      --mdx                 Markdown with YAML front matter")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (default \"Report\")")
	fmt.Fprintln(w, "      --author <s>          Author byline")
	fmt.Fprintln(w, "      --toc                 Include a table of contents (HTML, PDF)")
	fmt.Fprintln(w, "      --date <s>            MDX date: \"now\" (default), \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default 30s)")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox (containers, CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Override styles/default.css, templates/document.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DPROC_BROWSER_BIN         Chrome binary to use")
	fmt.Fprintln(w, "  DPROC_NO_SANDBOX=1        Same as --no-sandbox")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dproc config <show|path> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  show       Print the effective configuration, API key masked")
	fmt.Fprintln(w, "  path       Print the configuration file in use")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print as JSON (show only)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dproc doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox and temp directory setup for PDF export.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: dproc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: dproc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
