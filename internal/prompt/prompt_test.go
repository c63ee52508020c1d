package prompt

import (
	"strings"
	"testing"

	"github.com/nao1215/reimage/internal/extract"
	"github.com/nao1215/reimage/internal/model"
)

// TestBuilderAnalysis tests analysis prompt selection.
func TestBuilderAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("json method uses default", func(t *testing.T) {
		t.Parallel()

		got := Builder{}.Analysis(model.MethodJSON)
		if got != DefaultJSONPrompt {
			t.Errorf("Analysis() = %q, want default JSON prompt", got)
		}
	})

	t.Run("json_svg method asks for svg", func(t *testing.T) {
		t.Parallel()

		got := Builder{}.Analysis(model.MethodJSONSVG)
		if !strings.Contains(got, "SVG format") {
			t.Errorf("Analysis() = %q, want SVG instruction", got)
		}
	})

	t.Run("overrides replace defaults", func(t *testing.T) {
		t.Parallel()

		b := Builder{JSONPrompt: "describe it", JSONSVGPrompt: "describe it with svg"}
		if got := b.Analysis(model.MethodJSON); got != "describe it" {
			t.Errorf("Analysis(json) = %q", got)
		}
		if got := b.Analysis(model.MethodJSONSVG); got != "describe it with svg" {
			t.Errorf("Analysis(json_svg) = %q", got)
		}
	})
}

// TestBuilderSynthesis tests single-fragment synthesis prompts.
func TestBuilderSynthesis(t *testing.T) {
	t.Parallel()

	got := Builder{}.Synthesis(`{"a":1}`)
	if !strings.Contains(got, "Generate an image based on the following structured data/description:") {
		t.Errorf("Synthesis() missing instruction: %q", got)
	}
	if !strings.Contains(got, `{"a":1}`) {
		t.Errorf("Synthesis() missing description: %q", got)
	}
}

// TestBuilderCombinedSynthesis tests the two-section combined prompt and
// its raw-text fallback.
func TestBuilderCombinedSynthesis(t *testing.T) {
	t.Parallel()

	t.Run("both fragments produce labeled sections", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"shape\":\"circle\"}\n```\n```svg\n<svg><circle r=\"5\"/></svg>\n```"
		frag := extract.Fragments(raw)

		got := Builder{}.CombinedSynthesis(raw, frag)

		if !strings.Contains(got, "JSON Description:") {
			t.Error("missing JSON section label")
		}
		if !strings.Contains(got, "SVG Structure:") {
			t.Error("missing SVG section label")
		}
		if !strings.Contains(got, `{"shape":"circle"}`) {
			t.Error("missing JSON fragment verbatim")
		}
		if !strings.Contains(got, `<svg><circle r="5"/></svg>`) {
			t.Error("missing SVG fragment verbatim")
		}
	})

	t.Run("missing svg falls back to raw text", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"shape\":\"circle\"}\n```\nno svg here"
		frag := extract.Fragments(raw)

		got := Builder{}.CombinedSynthesis(raw, frag)

		if !strings.Contains(got, raw) {
			t.Error("fallback prompt should carry the raw text verbatim")
		}
		if !strings.Contains(got, "may contain both JSON and SVG") {
			t.Error("fallback prompt should label the text as possibly mixed")
		}
	})

	t.Run("json passthrough falls back to raw text", func(t *testing.T) {
		t.Parallel()

		// An SVG fence alone: JSON extraction degrades to passthrough,
		// so the combined prompt must not pretend a JSON parse happened.
		raw := "no structure besides ```svg\n<svg/>\n```"
		frag := extract.Fragments(raw)
		if frag.JSONOutcome != extract.NotFound {
			t.Skip("fixture unexpectedly parsed as JSON")
		}

		got := Builder{}.CombinedSynthesis(raw, frag)
		if !strings.Contains(got, raw) {
			t.Error("fallback prompt should carry the raw text verbatim")
		}
	})
}
