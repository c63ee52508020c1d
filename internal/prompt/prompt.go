package prompt

import (
	"github.com/nao1215/reimage/internal/extract"
	"github.com/nao1215/reimage/internal/model"
)

// Default analysis prompts. These can be overridden per-method via the
// configuration file for users who want to tune the description style.
const (
	// DefaultJSONPrompt asks the model for a JSON structured description.
	DefaultJSONPrompt = "Please extract this image as JSON structured data. " +
		"Extract all visible information in the image as structured text."

	// DefaultJSONSVGPrompt additionally asks for an SVG re-rendering.
	DefaultJSONSVGPrompt = DefaultJSONPrompt +
		" Then, also carefully convert the image details into SVG format."
)

// Builder constructs model prompts. The zero value uses the default
// prompt wording; non-empty overrides replace the analysis prompts.
type Builder struct {
	// JSONPrompt overrides the JSON-method analysis prompt when non-empty.
	JSONPrompt string

	// JSONSVGPrompt overrides the JSON+SVG-method analysis prompt when non-empty.
	JSONSVGPrompt string
}

// Analysis returns the analysis prompt for the given method.
func (b Builder) Analysis(method model.Method) string {
	switch method {
	case model.MethodJSONSVG:
		if b.JSONSVGPrompt != "" {
			return b.JSONSVGPrompt
		}
		return DefaultJSONSVGPrompt
	default:
		if b.JSONPrompt != "" {
			return b.JSONPrompt
		}
		return DefaultJSONPrompt
	}
}

// Synthesis wraps a description in the reconstruction instruction.
// The description may be raw analysis text or an extracted fragment.
func (b Builder) Synthesis(description string) string {
	return "Generate an image based on the following structured data/description:\n\n" + description
}

// CombinedSynthesis builds the reconstruction prompt for the JSON+SVG
// method. When both fragments were genuinely extracted (an SVG fragment
// exists and the JSON fragment differs from the raw text, signaling a
// real parse rather than a pass-through) it produces a two-part prompt
// with explicitly labeled sections. Otherwise it falls back to the
// entire raw analysis text: partial extraction failures must not discard
// information, since the model may still find useful structure in
// unparsed text.
func (b Builder) CombinedSynthesis(raw string, frag extract.Fragment) string {
	if frag.HasSVG && frag.JSONOutcome != extract.NotFound {
		return "Generate an image based on the following structured description.\n\n" +
			"JSON Description:\n" + frag.JSON + "\n\n" +
			"SVG Structure:\n" + frag.SVG
	}

	return "Generate an image based on the following description, " +
		"which may contain both JSON and SVG data:\n\n" + raw
}
