// Package model defines the core data structures used throughout reimage.
//
// This package contains the following main types:
//   - Method: The analysis method used to describe an image
//   - ReportInput: The set of optional artifacts that feed one HTML report
//   - ManifestEntry: One successful batch item and the link to its report
//   - ItemResult: The per-image outcome collected during batch processing
//   - RunRecord: A persisted record of one pipeline run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, report, database) need to use
// these types, so centralizing them prevents import cycles.
package model
