// Package log provides structured logging helpers for reimage.
//
// The package wraps log/slog with a sanitizing handler that masks API
// credentials and tokens before they reach the log output. The Gemini
// API key is passed through several layers of the application, so
// defense against accidental logging lives in one place rather than at
// every call site.
package log
