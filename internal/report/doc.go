// Package report renders the pipeline's output documents: the per-image
// HTML comparison report, the batch HTML index, and the batch Markdown
// summary.
//
// Rendering is deterministic: the same inputs always produce
// byte-identical documents. Panel presence in the comparison report is
// purely a function of which artifacts exist on disk and which fragments
// were extracted, never of configuration flags, so a document always
// reflects what was actually produced.
package report
