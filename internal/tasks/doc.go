// Package tasks runs artist lookups on behalf of the CLI and the terminal UI.
//
// # Core Operations
//
//  1. [LookupEngine.Lookup] : one request for one committed term
//     - Calls [services.ArtistService.Search] exactly once
//     - Classifies the outcome (ok, network, parse) and hands it to the optional [Recorder]
//     - Recorder failures are logged, never returned
//
//  2. [LookupEngine.BulkLookup] : several terms at once
//     - Skips blank terms without a request
//     - Dispatches through a worker pool throttled by golang.org/x/time/rate
//     - Returns results in input order regardless of completion order
//
// # Progress Reporting
//
// Bulk lookups emit [ProgressUpdate] values on an optional channel.
// Updates use select with default to prevent blocking.
package tasks
