package model

// ManifestEntry records one successfully processed batch image and the
// relative link to its report. Entries are ordered by the deterministic
// enumeration order of the input directory.
type ManifestEntry struct {
	// Image is the base name of the source image file.
	Image string

	// Report is the link to the image's report, relative to the
	// batch index document.
	Report string
}

// ItemResult is the outcome of processing a single image in a batch.
// Exactly one of Entry and Err is meaningful: a successful item carries
// a manifest entry, a failed one carries the cause.
//
// Design decision: Batch processing collects explicit per-item results
// instead of propagating errors across the loop. This keeps the
// "one image's failure never aborts the batch" contract visible in the
// type system and testable without triggering real API failures.
type ItemResult struct {
	// Image is the base name of the source image file.
	Image string

	// Entry is the manifest entry for a successful item. Nil on failure.
	Entry *ManifestEntry

	// Err is the cause of failure. Nil on success.
	Err error
}

// Failed reports whether the item ended in the failed state.
func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// Manifest filters results down to the ordered list of successful
// manifest entries. Failed items are omitted but do not affect the
// relative order of the remaining entries.
func Manifest(results []ItemResult) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if r.Failed() || r.Entry == nil {
			continue
		}
		entries = append(entries, *r.Entry)
	}
	return entries
}
