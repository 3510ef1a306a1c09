package mdexport

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFormat
// ---------------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "html", want: FormatHTML},
		{input: "PDF", want: FormatPDF},
		{input: " mdx ", want: FormatMDX},
		{input: "docx", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	got := Formats()
	if len(got) != 3 || got[0] != FormatHTML || got[1] != FormatPDF || got[2] != FormatMDX {
		t.Errorf("Formats() = %v, want [html pdf mdx]", got)
	}

	got[0] = "changed"
	if Formats()[0] != FormatHTML {
		t.Error("Formats() exposes internal order slice")
	}
}

// ---------------------------------------------------------------------------
// TestOutcome
// ---------------------------------------------------------------------------

func TestSummarize(t *testing.T) {
	t.Parallel()

	outcomes := []Outcome{
		{Target: Target{Format: FormatHTML}},
		{Target: Target{Format: FormatPDF}, Err: &RenderError{Format: FormatPDF, Err: ErrBrowserConnect}},
		{Target: Target{Format: FormatMDX}},
	}

	ok, failed := Summarize(outcomes)
	if ok != 2 || failed != 1 {
		t.Errorf("Summarize() = (%d, %d), want (2, 1)", ok, failed)
	}
	if !outcomes[0].Succeeded() || outcomes[1].Succeeded() {
		t.Error("Succeeded() does not follow Err")
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	err := error(&RenderError{Format: FormatPDF, Path: "/x/report.pdf", Err: ErrPageLoad})

	if !errors.Is(err, ErrPageLoad) {
		t.Error("RenderError does not unwrap to its cause")
	}
	var re *RenderError
	if !errors.As(err, &re) || re.Format != FormatPDF {
		t.Errorf("errors.As() = %+v", re)
	}
	if got, want := err.Error(), "pdf export to /x/report.pdf: failed to load page"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestOptionsTitle(t *testing.T) {
	t.Parallel()

	if got := (Options{}).title(); got != DefaultTitle {
		t.Errorf("title() = %q, want %q", got, DefaultTitle)
	}
	if got := (Options{Title: "Q3"}).title(); got != "Q3" {
		t.Errorf("title() = %q, want Q3", got)
	}
}
