package genai

import "errors"

var (
	// ErrMissingAPIKey is returned by NewClient when no credential is given.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrNoText is returned by Analyze when the response contains no
	// text parts. Unlike an absent image from Synthesize, a textless
	// analysis response leaves the pipeline with nothing to work from,
	// so it is an error.
	ErrNoText = errors.New("response contained no text parts")
)
