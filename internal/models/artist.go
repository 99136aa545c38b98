package models

import (
	"bytes"
	"encoding/json"
)

// Image is one artwork entry of an [ArtistResult].
type Image struct {
	URL string `json:"url"`
}

// Followers wraps the follower count; Total is nil when the API omits it.
type Followers struct {
	Total *float64 `json:"total"`
}

// SimilarArtist is one entry of the similar artists list.
//
// The API sends either a bare string or an object with a name; both decode into Name.
// Entries of any other shape decode with an empty Name and are skipped by [ArtistResult.SimilarNames].
type SimilarArtist struct {
	Name string
}

// UnmarshalJSON accepts "Thom Yorke", {"name": "Thom Yorke"}, null, or anything else (ignored).
func (s *SimilarArtist) UnmarshalJSON(data []byte) error {
	s.Name = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &s.Name)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if raw, ok := obj["name"]; ok {
			var name string
			if err := json.Unmarshal(raw, &name); err == nil {
				s.Name = name
			}
		}
	}
	return nil
}

// MarshalJSON writes the entry back as a bare string.
func (s SimilarArtist) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}

// SimilarGroup holds the raw similar artist results.
type SimilarGroup struct {
	Results []SimilarArtist `json:"results"`
}

// SimilarArtists mirrors the similarArtists.similar.results nesting of the API.
type SimilarArtists struct {
	Similar *SimilarGroup `json:"similar,omitempty"`
}

// ArtistResult is the payload returned by GET /search?name=.
type ArtistResult struct {
	Name           string          `json:"name"`
	Followers      *Followers      `json:"followers,omitempty"`
	Popularity     *float64        `json:"popularity,omitempty"`
	Images         []Image         `json:"img,omitempty"`
	SpotifyURL     string          `json:"spotifyUrl,omitempty"`
	Spotify        string          `json:"spotify,omitempty"`
	Albums         []string        `json:"albums,omitempty"`
	TopTracks      []string        `json:"topTracks,omitempty"`
	TrackURLs      []string        `json:"trackUrls,omitempty"`
	SimilarArtists *SimilarArtists `json:"similarArtists,omitempty"`
}

// ImageURL returns the second image when it has a URL, else the first, else "".
func (a *ArtistResult) ImageURL() string {
	if len(a.Images) > 1 && a.Images[1].URL != "" {
		return a.Images[1].URL
	}
	if len(a.Images) > 0 {
		return a.Images[0].URL
	}
	return ""
}

// ListenURL prefers spotifyUrl and falls back to spotify.
func (a *ArtistResult) ListenURL() string {
	if a.SpotifyURL != "" {
		return a.SpotifyURL
	}
	return a.Spotify
}

// FollowerCount returns followers.total, or nil when absent.
func (a *ArtistResult) FollowerCount() *float64 {
	if a.Followers == nil {
		return nil
	}
	return a.Followers.Total
}

// Similar returns the raw similar artist entries, including ones without a usable name.
func (a *ArtistResult) Similar() []SimilarArtist {
	if a.SimilarArtists == nil || a.SimilarArtists.Similar == nil {
		return nil
	}
	return a.SimilarArtists.Similar.Results
}

// SimilarNames returns the names of similar artists, skipping entries without one.
func (a *ArtistResult) SimilarNames() []string {
	var names []string
	for _, s := range a.Similar() {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// TrackURL returns the listen URL paired positionally with TopTracks[i], or "".
func (a *ArtistResult) TrackURL(i int) string {
	if i < 0 || i >= len(a.TrackURLs) {
		return ""
	}
	return a.TrackURLs[i]
}
