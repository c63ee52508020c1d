// Package pipeline executes the per-image processing steps in sequence:
// analysis with each method, synthesis of the reconstructed images, and
// report assembly.
//
// Design decision: We use a pipeline of named steps instead of direct
// function calls because:
//  1. It gives every step uniform logging and error recording
//  2. It supports cancellation via context between steps
//  3. Batch processing can run fresh pipelines per image with no shared state
//
// Within one image the steps are strictly sequential, since each depends
// on the previous step's output. Across images the BatchProcessor
// isolates failures: one image entering the failed state never aborts
// the batch.
package pipeline
