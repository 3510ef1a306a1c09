package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/dateutil"
	"github.com/alnah/go-mdexport/internal/hints"
)

// exportSettings is the result of merging flags, environment and config.
// Precedence: flags > environment > config file > library defaults.
type exportSettings struct {
	formats    []mdexport.Format
	opts       mdexport.Options
	timeout    time.Duration // 0 = library default
	assetPath  string
	browserBin string
	noSandbox  bool
}

// runExport exports one markdown file and returns the exit code.
func runExport(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	inputPath, err := resolveInput(positional)
	if err != nil {
		return fail(env, err, "")
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return fail(env, fmt.Errorf("loading config: %w", err), configHint(err))
	}

	settings, err := mergeSettings(flags, cfg, env)
	if err != nil {
		return fail(env, err, exportHint(err))
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	exporter, err := mdexport.NewExporter(settings.exporterOptions(logger, env.Now)...)
	if err != nil {
		return fail(env, err, "")
	}

	outcomes, err := exporter.Export(ctx, inputPath, settings.formats, settings.opts)
	if err != nil {
		return fail(env, err, exportHint(err))
	}

	return printOutcomes(outcomes, flags.common.quiet, flags.common.verbose, env)
}

// resolveInput returns the single positional argument.
func resolveInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrTooManyArgs, len(args))
	}
}

// loadConfig loads the named config, or the first default one found.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.LoadDefault()
	}
	return config.Load(nameOrPath)
}

// mergeSettings applies flags and environment over the config file.
func mergeSettings(f *exportFlags, cfg *config.Config, env *Environment) (*exportSettings, error) {
	s := &exportSettings{
		opts: mdexport.Options{
			Title:      cfg.Export.Title,
			Author:     cfg.Export.Author,
			IncludeTOC: cfg.Export.TOC,
			Date:       cfg.Export.Date,
		},
		assetPath:  cfg.Assets.BasePath,
		browserBin: cfg.Browser.Bin,
		noSandbox:  cfg.Browser.NoSandbox,
	}

	if f.changed("title") {
		s.opts.Title = f.document.title
	}
	if f.changed("author") {
		s.opts.Author = f.document.author
	}
	if f.changed("toc") {
		s.opts.IncludeTOC = f.document.toc
	}
	if f.changed("date") {
		s.opts.Date = f.document.date
	}
	if f.changed("asset-path") {
		s.assetPath = f.assetPath
	}

	if bin := env.Getenv(hints.EnvBrowserBin); bin != "" {
		s.browserBin = bin
	}
	if v := env.Getenv(hints.EnvNoSandbox); v != "" {
		s.noSandbox = isTruthy(v)
	}
	if f.browser.noSandbox {
		s.noSandbox = true
	}

	formats, err := selectFormats(f.formats, cfg.Export.Formats)
	if err != nil {
		return nil, err
	}
	s.formats = formats

	s.timeout, err = cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if f.changed("timeout") {
		d, err := time.ParseDuration(f.browser.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", ErrInvalidTimeout, f.browser.timeout)
		}
		s.timeout = d
	}

	// The MDX renderer stamps the current time itself when Date is empty.
	if s.opts.Date != "" {
		s.opts.Date, err = dateutil.Resolve(s.opts.Date, env.Now())
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// selectFormats returns the formats chosen by flags, or the config
// defaults when no format flag is set.
func selectFormats(f formatFlags, defaults []string) ([]mdexport.Format, error) {
	var formats []mdexport.Format
	if f.html {
		formats = append(formats, mdexport.FormatHTML)
	}
	if f.pdf {
		formats = append(formats, mdexport.FormatPDF)
	}
	if f.mdx {
		formats = append(formats, mdexport.FormatMDX)
	}
	if len(formats) > 0 {
		return formats, nil
	}

	for _, name := range defaults {
		format, err := mdexport.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	return formats, nil
}

// exporterOptions builds the library options for these settings.
func (s *exportSettings) exporterOptions(logger *slog.Logger, now func() time.Time) []mdexport.Option {
	opts := []mdexport.Option{
		mdexport.WithLogger(logger),
		mdexport.WithClock(now),
		mdexport.WithAssetPath(s.assetPath),
		mdexport.WithBrowser(s.browserBin, s.noSandbox),
	}
	if s.timeout > 0 {
		opts = append(opts, mdexport.WithTimeout(s.timeout))
	}
	return opts
}

// newLogger returns the diagnostics logger: Debug with -v, Warn otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printOutcomes reports every target and returns the exit code: success
// unless every requested format failed.
func printOutcomes(outcomes []mdexport.Outcome, quiet, verbose bool, env *Environment) int {
	succeeded, failed := mdexport.Summarize(outcomes)

	var firstErr error
	for _, o := range outcomes {
		if o.Err != nil {
			if firstErr == nil {
				firstErr = o.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s %s: %v%s\n", o.Target.Format, o.Target.Path, cause(o.Err), failureHint(o.Err, env.Getenv))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "Created %s (%v)\n", o.Target.Path, o.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", o.Target.Path)
		}
	}

	if !quiet && len(outcomes) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	if succeeded == 0 && failed > 0 {
		if code := exitCodeFor(firstErr); code != ExitSuccess {
			return code
		}
		return ExitGeneral
	}
	return ExitSuccess
}

// cause strips the RenderError wrapper, whose format and path are
// already printed.
func cause(err error) error {
	var re *mdexport.RenderError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}

// fail prints err with an optional hint and returns its exit code.
func fail(env *Environment, err error, hint string) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hint)
	return exitCodeFor(err)
}

func configHint(err error) string {
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(config.DefaultSearchPaths())
	}
	return ""
}

func exportHint(err error) string {
	switch {
	case errors.Is(err, mdexport.ErrNoFormatSpecified):
		return hints.ForNoFormat()
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return hints.ForInvalidDate()
	case errors.Is(err, ErrInvalidTimeout):
		return hints.ForTimeout()
	}
	return ""
}

func failureHint(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, mdexport.ErrBrowserConnect):
		return hints.ForBrowserConnect(getenv)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdexport.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// isTruthy reports whether an environment value means "enabled".
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
