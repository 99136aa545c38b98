// package tasks runs artist lookups and records each outcome to search history.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/services"
	"github.com/desertthunder/discover/internal/shared"
)

// Recorder persists completed searches.
type Recorder interface {
	Record(entry models.HistoryEntry) error
}

// LookupResult is the outcome of a single search.
type LookupResult struct {
	Query  models.SearchQuery
	Artist *models.ArtistResult // nil on failure
	Error  error
}

// Outcome classifies r for history.
func (r LookupResult) Outcome() models.Outcome {
	return OutcomeOf(r.Error)
}

// OutcomeOf maps a lookup error to its history outcome.
func OutcomeOf(err error) models.Outcome {
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.Is(err, shared.ErrParse):
		return models.OutcomeParse
	default:
		return models.OutcomeNetwork
	}
}

// LookupEngine performs searches against an [services.ArtistService].
type LookupEngine struct {
	svc      services.ArtistService
	recorder Recorder
	logger   *log.Logger
}

// NewLookupEngine creates a LookupEngine. recorder may be nil.
func NewLookupEngine(svc services.ArtistService, recorder Recorder, logger *log.Logger) *LookupEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LookupEngine{svc: svc, recorder: recorder, logger: logger}
}

// Lookup issues exactly one request for q and records the outcome.
//
// Recording failures are logged and never change the returned result.
func (e *LookupEngine) Lookup(ctx context.Context, q models.SearchQuery) LookupResult {
	res := LookupResult{Query: q}
	if e.svc == nil {
		res.Error = fmt.Errorf("%w: artist service not initialized", shared.ErrServiceUnavailable)
		return res
	}

	res.Artist, res.Error = e.svc.Search(ctx, q)
	if res.Error != nil {
		res.Artist = nil
		e.logger.Debug("lookup failed", "term", q, "error", res.Error)
	} else {
		e.logger.Debug("search completed", "term", q, "artist", res.Artist.Name)
	}

	e.record(res)
	return res
}

func (e *LookupEngine) record(res LookupResult) {
	if e.recorder == nil {
		return
	}

	name := ""
	if res.Artist != nil {
		name = res.Artist.Name
	}

	entry := models.NewHistoryEntry(res.Query, res.Outcome(), name)
	if err := e.recorder.Record(entry); err != nil {
		e.logger.Warn("failed to record search", "term", res.Query, "error", err)
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *LookupEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
