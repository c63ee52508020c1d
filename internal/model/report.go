package model

// ReportInput holds the set of artifact references that feed one HTML
// comparison report. Every field except OriginalImage is optional: a
// missing or non-existent reference means the corresponding panel is
// simply omitted from the rendered document.
//
// Design decision: We use an explicit struct of named optional references
// rather than a variadic list so the assembler's panel-presence logic is
// a pure function of which fields are populated. This makes it trivially
// unit-testable with nothing more than file-existence checks.
type ReportInput struct {
	// OriginalImage is the path to the source image. Always required.
	OriginalImage string

	// JSONImage is the path to the image reconstructed from the
	// JSON-method description. Optional.
	JSONImage string

	// SVGImage is the path to the image reconstructed from the
	// JSON+SVG-method description. Optional.
	SVGImage string

	// JSONText is the path to the raw JSON-method analysis text. Optional.
	JSONText string

	// SVGText is the path to the raw JSON+SVG-method analysis text. Optional.
	SVGText string
}
