package tasks

import (
	"fmt"

	"github.com/desertthunder/discover/internal/models"
)

// ProgressUpdate represents a progress event during a bulk lookup.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Queue Phase = iota
	Search
	Complete
)

func (p Phase) String() string {
	switch p {
	case Queue:
		return "queue"
	case Search:
		return "search"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func queuedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Queue,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Queued %d searches...", total),
	}
}

func searchingUpdate(step, total int, q models.SearchQuery) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Search,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching: %s...", step, total, q),
	}
}

func lookupCompletedUpdate(step, total int, res LookupResult) ProgressUpdate {
	if res.Error != nil {
		return ProgressUpdate{
			Phase:   Complete,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Query, res.Error),
			Data:    res,
		}
	}
	return ProgressUpdate{
		Phase:   Complete,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Artist.Name),
		Data:    res,
	}
}
