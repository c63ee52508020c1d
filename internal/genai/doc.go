// Package genai implements a client for the Gemini generateContent REST
// API. It exposes the two calls the pipeline needs: Analyze, which sends
// an image plus an instruction and returns the model's text, and
// Synthesize, which sends a text prompt and returns generated image
// bytes when the model produces any.
//
// Design decision: We talk to the REST endpoint directly with net/http
// rather than pulling in a vendor SDK. The pipeline uses exactly one
// endpoint shape (generateContent with text and inline-data parts), and
// a thin client keeps the request/response types visible and testable
// against httptest servers.
package genai
