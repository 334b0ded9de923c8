// Package history provides SQLite-based storage of past scan summaries.
//
// Only summary rows are stored: per-family file counts, graph totals, the
// artifact path, and a digest of the rendered artifact. The dependency
// graphs themselves never touch the database; the markdown artifact is the
// sole full record of a scan, and the history exists to list and compare
// past runs cheaply.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package history
