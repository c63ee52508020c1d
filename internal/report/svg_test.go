package report

import "testing"

// TestValidSVG tests the inline-embedding probe.
func TestValidSVG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{
			name:   "well-formed svg",
			markup: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`,
			want:   true,
		},
		{
			name:   "self-closing svg",
			markup: `<svg/>`,
			want:   true,
		},
		{
			name:   "sloppy but renderable svg",
			markup: `<svg width=100 height=100><circle cx=50 cy=50 r=40></svg>`,
			want:   true,
		},
		{
			name:   "svg after leading prose",
			markup: "Here you go: <svg><path d=\"M0 0\"/></svg>",
			want:   true,
		},
		{
			name:   "no svg element",
			markup: `<div><p>not a drawing</p></div>`,
			want:   false,
		},
		{
			name:   "plain text",
			markup: "just words",
			want:   false,
		},
		{
			name:   "empty",
			markup: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidSVG(tt.markup); got != tt.want {
				t.Errorf("ValidSVG(%q) = %v, want %v", tt.markup, got, tt.want)
			}
		})
	}
}
