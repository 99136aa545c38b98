package models

import "strings"

// DefaultSearchTerm is searched once when the results view first starts.
const DefaultSearchTerm = "Linkin Park"

// SearchQuery is a trimmed, non-empty search term.
type SearchQuery string

// NewSearchQuery trims raw and reports false when nothing is left.
func NewSearchQuery(raw string) (SearchQuery, bool) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return "", false
	}
	return SearchQuery(term), true
}

func (q SearchQuery) String() string { return string(q) }
