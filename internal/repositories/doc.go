// Package repositories implements SQLite persistence for search history.
//
// Key Implementations:
//   - [HistoryRepository] : one row per completed search, newest first
//   - [HistoryRecorder] : adapts the repository to the recorder interface used by lookups
//
// Sequence numbers provide stable ordering independent of UUIDs and timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
//
// The default database is ":memory:", so history lives only as long as the process unless a file path is configured.
package repositories
