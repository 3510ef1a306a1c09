package mdexport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

// fakePrinter records what the PDF renderer hands to the browser.
type fakePrinter struct {
	data []byte
	err  error

	mu          sync.Mutex
	calls       int
	htmlPath    string
	html        string
	hadDeadline bool
}

func (f *fakePrinter) PrintToPDF(ctx context.Context, htmlPath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.htmlPath = htmlPath
	if content, err := os.ReadFile(htmlPath); err == nil {
		f.html = string(content)
	}
	_, f.hadDeadline = ctx.Deadline()
	return f.data, f.err
}

// panicRenderer simulates a renderer bug.
type panicRenderer struct{}

func (panicRenderer) RenderFile(context.Context, string, string, Options) error {
	panic("boom")
}

var fixedNow = time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// writeMarkdown creates dir/name with content and returns its path.
func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing markdown: %v", err)
	}
	return path
}

// listDir returns the names of the entries in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// assertNoTempFiles fails when dir holds an intermediate .temp.html file.
func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.temp.html"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("intermediate files left behind: %v", matches)
	}
}
