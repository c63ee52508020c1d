// Package database provides SQLite-based storage for run history.
//
// Every analyze, generate, and batch invocation records an outcome row
// so past runs can be listed with the history command.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of a
// flat log file because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Ordered, filtered queries come for free
// 4. WAL mode provides good concurrent read performance
package database
