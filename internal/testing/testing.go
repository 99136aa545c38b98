// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/discover/internal/models"
)

// MockArtistService is a test double for [services.ArtistService].
//
// Results are keyed by the lower-cased term; unknown terms return Err, or a not-found error when Err is nil.
type MockArtistService struct {
	Results map[string]*models.ArtistResult
	Errs    map[string]error
	Err     error

	mu    sync.Mutex
	calls []string
}

func NewMockArtistService(results ...*models.ArtistResult) *MockArtistService {
	m := &MockArtistService{Results: map[string]*models.ArtistResult{}, Errs: map[string]error{}}
	for _, r := range results {
		m.Results[strings.ToLower(r.Name)] = r
	}
	return m
}

func (m *MockArtistService) Search(ctx context.Context, q models.SearchQuery) (*models.ArtistResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, q.String())
	m.mu.Unlock()

	key := strings.ToLower(q.String())
	if err, ok := m.Errs[key]; ok {
		return nil, err
	}
	if r, ok := m.Results[key]; ok {
		return r, nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, errors.New("artist not found")
}

// Calls returns the terms searched so far, in order.
func (m *MockArtistService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MemoryRecorder collects history entries in memory.
type MemoryRecorder struct {
	Err error

	mu      sync.Mutex
	entries []models.HistoryEntry
}

func (r *MemoryRecorder) Record(entry models.HistoryEntry) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryRecorder) Entries() []models.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.HistoryEntry(nil), r.entries...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// Fixture returns a fully populated artist payload.
func Fixture(name string) *models.ArtistResult {
	followers := 1234567.0
	popularity := 77.0
	return &models.ArtistResult{
		Name:       name,
		Followers:  &models.Followers{Total: &followers},
		Popularity: &popularity,
		Images:     []models.Image{{URL: "https://img.example/" + name + "/large.jpg"}, {URL: "https://img.example/" + name + "/medium.jpg"}},
		SpotifyURL: "https://open.spotify.com/artist/" + strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Albums:     []string{"Hybrid Theory", "Meteora"},
		TopTracks:  []string{"Numb", "In the End", "Faint"},
		TrackURLs:  []string{"https://open.spotify.com/track/numb", "https://open.spotify.com/track/in-the-end"},
		SimilarArtists: &models.SimilarArtists{Similar: &models.SimilarGroup{Results: []models.SimilarArtist{
			{Name: "Thom Yorke"}, {Name: ""}, {Name: "Deftones"},
		}}},
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
