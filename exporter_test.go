package mdexport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMarkdown = "# A\n\n## B\n\nSome text.\n\n### C\n"

func newTestExporter(t *testing.T, printer pagePrinter, opts ...Option) *Exporter {
	t.Helper()

	opts = append([]Option{withPrinter(printer), WithClock(fixedClock)}, opts...)
	e, err := NewExporter(opts...)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}
	return e
}

// ---------------------------------------------------------------------------
// TestExporter_Export - Precondition failures
// ---------------------------------------------------------------------------

func TestExporter_Export_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formats []Format
		input   func(dir string) string
		wantErr error
	}{
		{
			name:    "no format",
			formats: nil,
			input:   func(dir string) string { return filepath.Join(dir, "report.md") },
			wantErr: ErrNoFormatSpecified,
		},
		{
			name:    "unknown format",
			formats: []Format{FormatHTML, "docx"},
			input:   func(dir string) string { return filepath.Join(dir, "report.md") },
			wantErr: ErrUnknownFormat,
		},
		{
			name:    "missing input",
			formats: []Format{FormatHTML, FormatMDX},
			input:   func(dir string) string { return filepath.Join(dir, "absent.md") },
			wantErr: ErrReadMarkdown,
		},
		{
			name:    "input is a directory",
			formats: []Format{FormatMDX},
			input: func(dir string) string {
				sub := filepath.Join(dir, "folder.md")
				_ = os.Mkdir(sub, 0o750)
				return sub
			},
			wantErr: ErrReadMarkdown,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeMarkdown(t, dir, "report.md", sampleMarkdown)
			printer := &fakePrinter{data: minimalPDF()}
			e := newTestExporter(t, printer)

			input := tt.input(dir)
			before := listDir(t, dir)
			outcomes, err := e.Export(context.Background(), input, tt.formats, Options{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Export() error = %v, want %v", err, tt.wantErr)
			}
			if outcomes != nil {
				t.Errorf("Export() outcomes = %v, want nil", outcomes)
			}
			if after := listDir(t, dir); len(after) != len(before) {
				t.Errorf("files created on precondition failure: %v", after)
			}
			if printer.calls != 0 {
				t.Error("browser used on precondition failure")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExporter_Export - Targets and independence
// ---------------------------------------------------------------------------

func TestExporter_Export_AllFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	e := newTestExporter(t, &fakePrinter{data: minimalPDF()})

	outcomes, err := e.Export(context.Background(), input, []Format{FormatMDX, FormatPDF, FormatHTML}, Options{IncludeTOC: true})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	wantOrder := []Format{FormatHTML, FormatPDF, FormatMDX}
	if len(outcomes) != len(wantOrder) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(wantOrder))
	}
	for i, o := range outcomes {
		if o.Target.Format != wantOrder[i] {
			t.Errorf("outcome %d format = %s, want %s", i, o.Target.Format, wantOrder[i])
		}
		if !o.Succeeded() {
			t.Errorf("%s failed: %v", o.Target.Format, o.Err)
		}
		if _, err := os.Stat(o.Target.Path); err != nil {
			t.Errorf("%s not written: %v", o.Target.Path, err)
		}
	}

	page, _ := os.ReadFile(filepath.Join(dir, "report.html"))
	for _, want := range []string{`href="#a"`, `href="#b"`, `href="#c"`, `id="a"`, `id="b"`, `id="c"`} {
		if !strings.Contains(string(page), want) {
			t.Errorf("report.html missing %q", want)
		}
	}

	mdx, _ := os.ReadFile(filepath.Join(dir, "report.mdx"))
	if !strings.HasSuffix(string(mdx), "---\n\n"+sampleMarkdown) {
		t.Errorf("report.mdx does not end with the source markdown: %q", mdx)
	}

	assertNoTempFiles(t, dir)
}

func TestExporter_Export_FormatsFailIndependently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	e := newTestExporter(t, &fakePrinter{err: ErrBrowserConnect})

	outcomes, err := e.Export(context.Background(), input, []Format{FormatHTML, FormatPDF, FormatMDX}, Options{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	ok, failed := Summarize(outcomes)
	if ok != 2 || failed != 1 {
		t.Fatalf("Summarize() = (%d, %d), want (2, 1)", ok, failed)
	}

	pdf := outcomes[1]
	var re *RenderError
	if !errors.As(pdf.Err, &re) || re.Format != FormatPDF || re.Path != filepath.Join(dir, "report.pdf") {
		t.Errorf("pdf error = %v, want RenderError for report.pdf", pdf.Err)
	}
	if !errors.Is(pdf.Err, ErrBrowserConnect) {
		t.Errorf("pdf error = %v, want ErrBrowserConnect", pdf.Err)
	}

	for _, name := range []string{"report.html", "report.mdx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "report.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Error("report.pdf written despite failure")
	}
	assertNoTempFiles(t, dir)
}

func TestExporter_Export_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	e := newTestExporter(t, &fakePrinter{data: minimalPDF()})
	e.renderers[FormatHTML] = panicRenderer{}

	outcomes, err := e.Export(context.Background(), input, []Format{FormatHTML, FormatMDX}, Options{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if outcomes[0].Succeeded() || !strings.Contains(outcomes[0].Err.Error(), "boom") {
		t.Errorf("html outcome = %v, want recovered panic", outcomes[0].Err)
	}
	if !outcomes[1].Succeeded() {
		t.Errorf("mdx failed after html panic: %v", outcomes[1].Err)
	}
}

func TestExporter_Export_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	printer := &fakePrinter{data: minimalPDF()}
	e := newTestExporter(t, printer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := e.Export(ctx, input, []Format{FormatHTML, FormatPDF, FormatMDX}, Options{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	for _, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Errorf("%s error = %v, want context.Canceled", o.Target.Format, o.Err)
		}
	}
	if names := listDir(t, dir); len(names) != 1 {
		t.Errorf("files written after cancellation: %v", names)
	}
	if printer.calls != 0 {
		t.Error("browser used after cancellation")
	}
}

func TestExporter_Export_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	e := newTestExporter(t, &fakePrinter{data: minimalPDF()})
	opts := Options{Title: "Q3", Author: "Ada", IncludeTOC: true}
	formats := []Format{FormatHTML, FormatMDX}

	read := func() (string, string) {
		if _, err := e.Export(context.Background(), input, formats, opts); err != nil {
			t.Fatal(err)
		}
		page, _ := os.ReadFile(filepath.Join(dir, "report.html"))
		mdx, _ := os.ReadFile(filepath.Join(dir, "report.mdx"))
		return string(page), string(mdx)
	}

	page1, mdx1 := read()
	page2, mdx2 := read()
	if page1 != page2 {
		t.Error("html differs between runs")
	}
	if mdx1 != mdx2 {
		t.Error("mdx differs between runs with a fixed clock")
	}
}

func TestExporter_Export_LogsStages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir := t.TempDir()
	input := writeMarkdown(t, dir, "report.md", sampleMarkdown)
	e := newTestExporter(t, &fakePrinter{data: minimalPDF()}, WithLogger(logger))

	if _, err := e.Export(context.Background(), input, []Format{FormatPDF}, Options{}); err != nil {
		t.Fatal(err)
	}

	logs := buf.String()
	for _, want := range []string{"export started", "pdf written", "pages=1", "export succeeded"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}
