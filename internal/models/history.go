package models

import (
	"fmt"
	"time"
)

// Outcome classifies how a search ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeNetwork Outcome = "network"
	OutcomeParse   Outcome = "parse"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeOK, OutcomeNetwork, OutcomeParse:
		return true
	}
	return false
}

// HistoryEntry records one completed search.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"-"`
	Term       string    `json:"term"`
	Outcome    Outcome   `json:"outcome"`
	ArtistName string    `json:"artist_name,omitempty"`
	SearchedAt time.Time `json:"searched_at"`
}

// NewHistoryEntry builds an entry for q stamped with the current time.
func NewHistoryEntry(q SearchQuery, outcome Outcome, artistName string) HistoryEntry {
	return HistoryEntry{
		Term:       q.String(),
		Outcome:    outcome,
		ArtistName: artistName,
		SearchedAt: time.Now().UTC(),
	}
}

// Validate checks that the entry can be stored.
func (h HistoryEntry) Validate() error {
	if h.Term == "" {
		return fmt.Errorf("term is required")
	}
	if !h.Outcome.Valid() {
		return fmt.Errorf("unknown outcome %q", h.Outcome)
	}
	if h.SearchedAt.IsZero() {
		return fmt.Errorf("searched_at is required")
	}
	return nil
}
