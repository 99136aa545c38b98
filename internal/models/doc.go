// Package models defines the data shapes shared by the search client, the TUI and the history store.
//
// The package contains three groups of types:
//
// 1. Search API payloads, decoded as-is from the remote API:
//   - [ArtistResult] : artist header, stats, albums, top tracks and similar artists
//   - [Image], [Followers], [SimilarArtists] : nested pieces of the payload
//
// 2. UI state:
//   - [SearchQuery] : a trimmed, non-empty search term
//   - [SessionUser] : the locally logged-in user (never validated server-side)
//   - [ViewState] : Loading, Empty or Loaded, derived from the results view
//
// 3. Persistent entities:
//   - [HistoryEntry] : one completed search and its [Outcome]
package models
