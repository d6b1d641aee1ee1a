// Package database provides SQLite-based storage for vcastgen run history.
//
// Every generation run is stored with its overall result and the complete
// report as JSON, so that `vcastgen history` can list past runs of a unit
// and reprint their summaries.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation to Windows hosts
// 3. WAL mode lets `history` read while a batch run is writing
package database
