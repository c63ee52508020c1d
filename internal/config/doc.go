// Package config provides configuration structures and utilities for
// reimage. It defines the main options for the analysis and synthesis
// model calls, batch processing, and report generation preferences.
package config
