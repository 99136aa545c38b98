package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
	"golang.org/x/time/rate"
)

// BulkLookupOpts contains configuration for bulk lookups.
type BulkLookupOpts struct {
	Workers   int     // Concurrent workers (default: 3, max: 10)
	RateLimit float64 // Requests per second (default: 2)
}

// BulkLookupResult collects the results of a bulk lookup in input order.
type BulkLookupResult struct {
	Results    []LookupResult
	Successful int
	Failed     int
	Skipped    int // blank terms, never requested
}

type lookupJob struct {
	index int
	query models.SearchQuery
}

// BulkLookup searches every term concurrently with rate limiting and progress tracking.
//
// Blank terms are skipped without a request. Results keep the order of the non-blank input terms.
// Cancelling ctx stops dispatching new lookups; lookups never dispatched are reported with the context error.
func (e *LookupEngine) BulkLookup(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	terms []string,
	opts BulkLookupOpts,
) (*BulkLookupResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: artist service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Workers <= 0 {
		opts.Workers = 3
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	var queries []models.SearchQuery
	result := &BulkLookupResult{}
	for _, term := range terms {
		q, ok := models.NewSearchQuery(term)
		if !ok {
			result.Skipped++
			continue
		}
		queries = append(queries, q)
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no search terms", shared.ErrMissingArgument)
	}

	total := len(queries)
	result.Results = make([]LookupResult, total)
	dispatched := make([]bool, total)

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan lookupJob)
	done := make(chan int, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go e.lookupWorker(ctx, &wg, jobs, done, result.Results)
	}

	go func() {
		defer close(jobs)
		e.sendProgress(prog, queuedUpdate(total))
		for i, q := range queries {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			select {
			case jobs <- lookupJob{index: i, query: q}:
				dispatched[i] = true
				e.sendProgress(prog, searchingUpdate(i+1, total, q))
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for idx := range done {
		completed++
		e.sendProgress(prog, lookupCompletedUpdate(completed, total, result.Results[idx]))
	}

	for i, q := range queries {
		if !dispatched[i] {
			result.Results[i] = LookupResult{Query: q, Error: ctx.Err()}
		}
		if result.Results[i].Error == nil {
			result.Successful++
		} else {
			result.Failed++
		}
	}

	return result, ctx.Err()
}

// lookupWorker runs lookups from the jobs channel, writing each result into its slot.
func (e *LookupEngine) lookupWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan lookupJob,
	done chan<- int,
	results []LookupResult,
) {
	defer wg.Done()

	for job := range jobs {
		results[job.index] = e.Lookup(ctx, job.query)
		done <- job.index
	}
}
