package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Outcome tags how a JSON fragment was located in raw model output.
//
// Design decision: Extraction returns a tagged result rather than an
// error because a missing fragment is a normal state of the pipeline,
// not a failure. Callers that need to know whether extraction
// meaningfully succeeded compare against NotFound instead of catching
// anything.
type Outcome int

const (
	// NotFound means no fragment was located and the raw input was
	// returned unchanged.
	NotFound Outcome = iota

	// FoundLabeled means a fenced block explicitly labeled with the
	// expected format was found.
	FoundLabeled

	// FoundInferred means the fragment was located by a permissive
	// fallback: an unlabeled fence with valid JSON content, or the
	// outermost brace-delimited substring.
	FoundInferred
)

// String returns a human-readable outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case FoundLabeled:
		return "found-labeled"
	case FoundInferred:
		return "found-inferred"
	default:
		return "not-found"
	}
}

// Fenced block patterns. (?s) makes . span newlines since fenced content
// is almost always multi-line.
var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFenceRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	svgFenceRe  = regexp.MustCompile("(?s)```svg\\s*(.*?)\\s*```")
	xmlFenceRe  = regexp.MustCompile("(?s)```xml\\s*(.*?)\\s*```")
)

// JSON extracts the best-effort JSON fragment from raw model output.
// It tries, in order:
//  1. a fenced block explicitly labeled json
//  2. any fenced block whose content parses as valid JSON
//  3. the substring from the first '{' to the last '}' inclusive
//
// If none apply, the input is returned unmodified with NotFound. The
// function never fails; a return value equal to the input signals that
// extraction did not meaningfully succeed.
func JSON(raw string) (string, Outcome) {
	if m := jsonFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1], FoundLabeled
	}

	if m := anyFenceRe.FindStringSubmatch(raw); m != nil {
		if json.Valid([]byte(m[1])) {
			return m[1], FoundInferred
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1], FoundInferred
	}

	return raw, NotFound
}

// SVG extracts an SVG fragment from raw model output. It looks for a
// fenced block explicitly labeled svg, then for an xml-labeled block
// whose content contains an opening <svg tag. The boolean reports
// whether a fragment was found; absence is a normal outcome, not an
// error.
func SVG(raw string) (string, bool) {
	if m := svgFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	if m := xmlFenceRe.FindStringSubmatch(raw); m != nil {
		if strings.Contains(m[1], "<svg") {
			return m[1], true
		}
	}

	return "", false
}

// Fragment is the pair of fragments derived from one analysis text.
// JSON is always populated with a best-effort guess; SVG is populated
// only when HasSVG is true.
type Fragment struct {
	// JSON is the extracted JSON fragment, or the raw text when
	// JSONOutcome is NotFound.
	JSON string

	// JSONOutcome tags how the JSON fragment was located.
	JSONOutcome Outcome

	// SVG is the extracted SVG fragment. Empty unless HasSVG.
	SVG string

	// HasSVG reports whether an SVG fragment was found.
	HasSVG bool
}

// Fragments runs both extractions over raw model output.
func Fragments(raw string) Fragment {
	f := Fragment{}
	f.JSON, f.JSONOutcome = JSON(raw)
	f.SVG, f.HasSVG = SVG(raw)
	return f
}
