package pipeline

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestMark - ==highlight== parsing outside code
// ---------------------------------------------------------------------------

func TestMark(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "inline highlight",
			markdown:     "x ==y== z",
			wantContains: []string{"<p>x <mark>y</mark> z</p>"},
		},
		{
			name:         "code span keeps operators",
			markdown:     "Compare `a == b == c` here.",
			wantContains: []string{"<code>a == b == c</code>"},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "fenced code keeps operators",
			markdown:     "```\nx ==y==\n```",
			wantContains: []string{"==y=="},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "spaced operators stay text",
			markdown:     "a == b == c",
			wantContains: []string{"a == b == c"},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "longer runs stay text",
			markdown:     "a ==== b",
			wantContains: []string{"a ==== b"},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "highlight next to code span",
			markdown:     "==key== is `k == v`",
			wantContains: []string{"<mark>key</mark>", "<code>k == v</code>"},
		},
		{
			name:         "highlight with emphasis inside",
			markdown:     "==very *important*==",
			wantContains: []string{"<mark>very <em>important</em></mark>"},
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.wantExcludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, got)
				}
			}
		})
	}
}
