// Search API client
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

const defaultBaseURL string = "http://localhost:5000"

// RequestIDHeader carries a per-request ID so client and API logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// APIService implements [ArtistService] against GET {baseURL}/search?name={term}.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

var _ ArtistService = (*APIService)(nil)

// NewAPIService creates a new search API client.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the configured API root.
func (a *APIService) BaseURL() string { return a.baseURL }

// SearchURL builds the request URL for term.
//
// The term is escaped like a URI component, so spaces become %20 rather than +.
func (a *APIService) SearchURL(term string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
	return a.baseURL + "/search?name=" + escaped
}

// Search performs one GET request for q.
//
// Non-2xx responses and transport failures wrap [shared.ErrNetwork];
// bodies that are not an artist object wrap [shared.ErrParse].
func (a *APIService) Search(ctx context.Context, q models.SearchQuery) (*models.ArtistResult, error) {
	term := strings.TrimSpace(q.String())
	if term == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.SearchURL(term), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, shared.GenerateID())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: request failed: status %d", shared.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	var result *models.ArtistResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrParse, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty response body", shared.ErrParse)
	}

	return result, nil
}
