package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/desertthunder/discover/internal/models"
)

//go:embed fixtures/*.json
var fixtureFiles embed.FS

// FixtureHandler serves canned artist payloads at /search?name=, matching names case-insensitively.
type FixtureHandler struct {
	artists map[string]json.RawMessage
}

// NewFixtureHandler loads the embedded fixtures plus any extra artists.
func NewFixtureHandler(extra ...*models.ArtistResult) (*FixtureHandler, error) {
	h := &FixtureHandler{artists: make(map[string]json.RawMessage)}

	entries, err := fixtureFiles.ReadDir("fixtures")
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	for _, entry := range entries {
		data, err := fixtureFiles.ReadFile(path.Join("fixtures", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", entry.Name(), err)
		}

		var artist models.ArtistResult
		if err := json.Unmarshal(data, &artist); err != nil {
			return nil, fmt.Errorf("invalid fixture %s: %w", entry.Name(), err)
		}
		h.artists[strings.ToLower(artist.Name)] = data
	}

	for _, a := range extra {
		data, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("failed to encode fixture %s: %w", a.Name, err)
		}
		h.artists[strings.ToLower(a.Name)] = data
	}

	return h, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *FixtureHandler) Routes() []string {
	return []string{"/search"}
}

// Names lists the lower-cased artist names this handler knows about, sorted.
func (h *FixtureHandler) Names() []string {
	names := make([]string, 0, len(h.artists))
	for name := range h.artists {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (h *FixtureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	data, ok := h.artists[strings.ToLower(name)]
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
