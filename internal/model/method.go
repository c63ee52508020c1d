package model

import "fmt"

// Method identifies how an image is described by the vision model.
type Method string

const (
	// MethodJSON asks the model for a JSON structured description only.
	MethodJSON Method = "json"

	// MethodJSONSVG asks the model for a JSON structured description plus
	// an SVG re-rendering of the image.
	MethodJSONSVG Method = "json_svg"
)

// ParseMethod converts a user-supplied string into a Method.
// It returns an error for unknown values so CLI flag validation can
// fail fast with a clear message.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodJSON:
		return MethodJSON, nil
	case MethodJSONSVG:
		return MethodJSONSVG, nil
	default:
		return "", fmt.Errorf("unknown method %q (expected %q or %q)", s, MethodJSON, MethodJSONSVG)
	}
}

// String returns the method's wire representation.
func (m Method) String() string {
	return string(m)
}
