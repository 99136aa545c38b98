// Package ui implements the interactive artist browser using bubbletea's Elm architecture.
//
// The screen has two parts:
//  1. [SearchBar] : the navigation bar with the search input and the login/logout affordance
//  2. [Model] : the results view showing the artist header, similar artists, albums and top tracks
//
// The [SearchBar] only normalizes input and emits the committed term; the [Model] owns the query, the loading flag and the result.
// Lookups run as [tea.Cmd] goroutines and come back as messages, so every state change happens in [Model.Update].
// There is no cancellation: when searches overlap, the response that resolves last wins.
//
// Selecting a similar artist with enter runs the same search as typing the name and submitting it.
// Tab cycles focus between the search bar, the similar artists grid and the track list.
package ui
