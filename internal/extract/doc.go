// Package extract pulls canonical JSON and SVG fragments out of raw,
// free-form model output.
//
// Model output format is not guaranteed: models may or may not honor
// fencing instructions, so extraction is layered from strict to permissive
// and never fails. Worst case, JSON extraction returns the raw text
// unchanged and SVG extraction reports absence. Callers branch on the
// returned Outcome tag, never on errors.
package extract
