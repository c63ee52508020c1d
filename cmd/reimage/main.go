// Package main provides the entry point for the reimage CLI.
//
// Reimage sends an image to a generative vision model for a structured
// description, reconstructs an image from that description, and renders
// side-by-side comparison reports.
//
// Usage:
//
//	reimage analyze <image>
//	reimage batch --input-dir <dir> --output-dir <dir>
//
// See --help for all available options.
package main

// main is the entry point for reimage.
func main() {
	Execute()
}
