package extract

import "testing"

// TestJSON tests JSON fragment extraction from raw model output.
func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		want        string
		wantOutcome Outcome
	}{
		{
			name:        "labeled json fence",
			raw:         "```json\n{\"a\":1}\n```",
			want:        `{"a":1}`,
			wantOutcome: FoundLabeled,
		},
		{
			name:        "labeled fence with surrounding prose",
			raw:         "Here is the data:\n```json\n{\"scene\": \"beach\"}\n```\nHope this helps!",
			want:        `{"scene": "beach"}`,
			wantOutcome: FoundLabeled,
		},
		{
			name:        "unlabeled fence with valid json",
			raw:         "```\n{\"b\": 2}\n```",
			want:        `{"b": 2}`,
			wantOutcome: FoundInferred,
		},
		{
			name:        "unlabeled fence with invalid json falls through to braces",
			raw:         "```\nnot json at all\n```\nbut look: {\"c\":3} here",
			want:        `{"c":3}`,
			wantOutcome: FoundInferred,
		},
		{
			name:        "bare braces in prose",
			raw:         "The object is {\"x\": true} as requested.",
			want:        `{"x": true}`,
			wantOutcome: FoundInferred,
		},
		{
			name:        "outermost braces win",
			raw:         "prefix {\"a\":{\"b\":1}} suffix {\"c\":2} end",
			want:        `{"a":{"b":1}} suffix {"c":2}`,
			wantOutcome: FoundInferred,
		},
		{
			name:        "no structure returns input unchanged",
			raw:         "Some notes without any block",
			want:        "Some notes without any block",
			wantOutcome: NotFound,
		},
		{
			name:        "empty input",
			raw:         "",
			want:        "",
			wantOutcome: NotFound,
		},
		{
			name:        "labeled fence preferred over earlier unlabeled fence",
			raw:         "```\nplain\n```\n```json\n{\"d\":4}\n```",
			want:        `{"d":4}`,
			wantOutcome: FoundLabeled,
		},
		{
			name:        "open brace without close returns input unchanged",
			raw:         "starts { but never closes",
			want:        "starts { but never closes",
			wantOutcome: NotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, outcome := JSON(tt.raw)
			if got != tt.want {
				t.Errorf("JSON() = %q, want %q", got, tt.want)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("JSON() outcome = %s, want %s", outcome, tt.wantOutcome)
			}
		})
	}
}

// TestJSONIdempotent verifies that re-extracting the passthrough result
// yields the same result.
func TestJSONIdempotent(t *testing.T) {
	t.Parallel()

	raw := "Some notes without any block"
	first, _ := JSON(raw)
	second, outcome := JSON(first)

	if second != first {
		t.Errorf("re-extraction changed result: %q -> %q", first, second)
	}
	if outcome != NotFound {
		t.Errorf("outcome = %s, want %s", outcome, NotFound)
	}
}

// TestSVG tests SVG fragment extraction from raw model output.
func TestSVG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{
			name:      "labeled svg fence",
			raw:       "```svg\n<svg viewBox=\"0 0 10 10\"></svg>\n```",
			want:      `<svg viewBox="0 0 10 10"></svg>`,
			wantFound: true,
		},
		{
			name:      "xml fence containing svg root",
			raw:       "```xml\n<svg xmlns=\"http://www.w3.org/2000/svg\"><rect/></svg>\n```",
			want:      `<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`,
			wantFound: true,
		},
		{
			name:      "xml fence without svg root is rejected",
			raw:       "```xml\n<note><to>you</to></note>\n```",
			want:      "",
			wantFound: false,
		},
		{
			name:      "no fences",
			raw:       "Some notes without any block",
			want:      "",
			wantFound: false,
		},
		{
			name:      "json fence only",
			raw:       "```json\n{\"a\":1}\n```",
			want:      "",
			wantFound: false,
		},
		{
			name:      "svg fence preferred over xml fence",
			raw:       "```xml\n<svg id=\"x\"/>\n```\n```svg\n<svg id=\"y\"/>\n```",
			want:      `<svg id="y"/>`,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found := SVG(tt.raw)
			if found != tt.wantFound {
				t.Fatalf("SVG() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("SVG() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFragments tests combined extraction over one analysis text.
func TestFragments(t *testing.T) {
	t.Parallel()

	t.Run("both fragments present", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"shape\":\"circle\"}\n```\n```svg\n<svg><circle r=\"5\"/></svg>\n```"
		f := Fragments(raw)

		if f.JSON != `{"shape":"circle"}` {
			t.Errorf("JSON = %q", f.JSON)
		}
		if f.JSONOutcome != FoundLabeled {
			t.Errorf("JSONOutcome = %s, want %s", f.JSONOutcome, FoundLabeled)
		}
		if !f.HasSVG {
			t.Fatal("expected SVG fragment")
		}
		if f.SVG != `<svg><circle r="5"/></svg>` {
			t.Errorf("SVG = %q", f.SVG)
		}
	})

	t.Run("neither fragment present", func(t *testing.T) {
		t.Parallel()

		raw := "free-form prose only"
		f := Fragments(raw)

		if f.JSON != raw {
			t.Errorf("JSON = %q, want passthrough", f.JSON)
		}
		if f.JSONOutcome != NotFound {
			t.Errorf("JSONOutcome = %s, want %s", f.JSONOutcome, NotFound)
		}
		if f.HasSVG {
			t.Error("unexpected SVG fragment")
		}
	})
}
