// package formatter renders artist lookups and search history as text, Markdown, JSON or CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/dustin/go-humanize"
)

// Placeholder stands in for any missing value.
const Placeholder = "—"

// Format names an output encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
	CSV      Format = "csv"
)

// ParseFormat resolves a user-supplied format name. Empty selects [Text].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case "md":
		return Markdown, nil
	case "txt":
		return Text, nil
	case Text, Markdown, JSON, CSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Count formats a nullable number with thousands separators, or [Placeholder] when absent.
//
// Whole numbers that fit in an int64 print without decimals; anything else keeps up to two.
func Count(n *float64) string {
	if n == nil {
		return Placeholder
	}
	if v := *n; v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(*n, 2)
}

// Compact formats a nullable number in short SI form (1.2M), or [Placeholder] when absent.
func Compact(n *float64) string {
	if n == nil {
		return Placeholder
	}
	if math.Abs(*n) < 1000 {
		return humanize.FtoaWithDigits(*n, 1)
	}
	return humanize.SIWithDigits(*n, 1, "")
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// ArtistToText converts an ArtistResult to plain text
func ArtistToText(a *models.ArtistResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artist: %s\n", a.Name))
	buf.WriteString(fmt.Sprintf("Followers: %s\n", Count(a.FollowerCount())))
	buf.WriteString(fmt.Sprintf("Popularity: %s\n", Count(a.Popularity)))
	buf.WriteString(fmt.Sprintf("Image: %s\n", orPlaceholder(a.ImageURL())))
	buf.WriteString(fmt.Sprintf("Listen: %s\n", orPlaceholder(a.ListenURL())))

	if similar := a.SimilarNames(); len(similar) > 0 {
		buf.WriteString(fmt.Sprintf("Similar: %s\n", strings.Join(similar, ", ")))
	}

	buf.WriteString(fmt.Sprintf("\nAlbums: %d\n", len(a.Albums)))
	for i, album := range a.Albums {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, album))
	}

	buf.WriteString(fmt.Sprintf("\nTop Tracks: %d\n", len(a.TopTracks)))
	for i, track := range a.TopTracks {
		buf.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, track, orPlaceholder(a.TrackURL(i))))
	}

	return buf.Bytes(), nil
}

// ArtistToMarkdown converts an ArtistResult to Markdown with the artist image and linked tracks
func ArtistToMarkdown(a *models.ArtistResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", a.Name))

	if img := a.ImageURL(); img != "" {
		buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", a.Name, img))
	}

	buf.WriteString(fmt.Sprintf("**Followers**: %s\n", Count(a.FollowerCount())))
	buf.WriteString(fmt.Sprintf("**Popularity**: %s\n", Count(a.Popularity)))
	if link := a.ListenURL(); link != "" {
		buf.WriteString(fmt.Sprintf("**Listen**: [Spotify](%s)\n", link))
	}
	buf.WriteString("\n")

	if similar := a.SimilarNames(); len(similar) > 0 {
		buf.WriteString("## Similar Artists\n\n")
		for _, name := range similar {
			buf.WriteString(fmt.Sprintf("- %s\n", name))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Albums\n\n")
	for i, album := range a.Albums {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, album))
	}

	buf.WriteString("\n## Top Tracks\n\n")
	for i, track := range a.TopTracks {
		if url := a.TrackURL(i); url != "" {
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, track, url))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, track))
		}
	}

	return buf.Bytes(), nil
}

// ArtistToJSON re-encodes an ArtistResult in its API shape
func ArtistToJSON(a *models.ArtistResult) ([]byte, error) {
	return shared.MarshalJSON(a, true)
}

// ArtistToCSV writes one row per top track with columns: Position, Track, URL, Artist
func ArtistToCSV(a *models.ArtistResult) ([]byte, error) {
	return artistsToCSV([]*models.ArtistResult{a})
}

func artistsToCSV(artists []*models.ArtistResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "Track", "URL", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range artists {
		for i, track := range a.TopTracks {
			record := []string{strconv.Itoa(i + 1), track, a.TrackURL(i), a.Name}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Artist renders a in the given format.
func Artist(a *models.ArtistResult, f Format) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: no artist to format", shared.ErrInvalidInput)
	}

	switch f {
	case Markdown:
		return ArtistToMarkdown(a)
	case JSON:
		return ArtistToJSON(a)
	case CSV:
		return ArtistToCSV(a)
	default:
		return ArtistToText(a)
	}
}

// Artists renders several lookups in one document.
//
// JSON produces an array and CSV shares a single header row. Text and Markdown separate artists with a blank line.
func Artists(artists []*models.ArtistResult, f Format) ([]byte, error) {
	if len(artists) == 0 {
		return nil, fmt.Errorf("%w: no artists to format", shared.ErrInvalidInput)
	}
	for _, a := range artists {
		if a == nil {
			return nil, fmt.Errorf("%w: no artist to format", shared.ErrInvalidInput)
		}
	}

	switch f {
	case JSON:
		return shared.MarshalJSON(artists, true)
	case CSV:
		return artistsToCSV(artists)
	}

	var buf bytes.Buffer
	for i, a := range artists {
		if i > 0 {
			buf.WriteString("\n")
		}
		data, err := Artist(a, f)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// HistoryToText renders history entries as aligned lines, newest first as given.
func HistoryToText(entries []*models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	if len(entries) == 0 {
		buf.WriteString("No searches yet.\n")
		return buf.Bytes(), nil
	}

	for _, e := range entries {
		buf.WriteString(fmt.Sprintf("%-8s %-24s %-24s %s\n",
			e.Outcome,
			e.Term,
			orPlaceholder(e.ArtistName),
			humanize.Time(e.SearchedAt),
		))
	}

	return buf.Bytes(), nil
}

// HistoryToCSV writes history entries with columns: ID, Term, Outcome, Artist, SearchedAt
func HistoryToCSV(entries []*models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Term", "Outcome", "Artist", "SearchedAt"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{e.ID, e.Term, string(e.Outcome), e.ArtistName, e.SearchedAt.UTC().Format(time.RFC3339)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// History renders entries in the given format. Markdown falls back to text.
func History(entries []*models.HistoryEntry, f Format) ([]byte, error) {
	switch f {
	case JSON:
		if entries == nil {
			entries = []*models.HistoryEntry{}
		}
		return shared.MarshalJSON(entries, true)
	case CSV:
		return HistoryToCSV(entries)
	default:
		return HistoryToText(entries)
	}
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidInput)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download image: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to download image: status %d", shared.ErrNetwork, resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image data: %v", shared.ErrNetwork, err)
	}

	return imageData, nil
}

// SaveImage downloads the artist's preferred image into dir and returns the written path.
//
// The file is named after the artist with a .jpg extension.
func SaveImage(client *http.Client, a *models.ArtistResult, dir string) (string, error) {
	return NewImageSaver(client, dir).Save(a)
}

// ImageSaver downloads artist images into one directory.
//
// Names are unique per saver: a second artist with the same slug gets a -2 suffix, and so on.
type ImageSaver struct {
	client *http.Client
	dir    string
	used   map[string]bool
}

// NewImageSaver creates an ImageSaver writing into dir (the working directory when empty).
func NewImageSaver(client *http.Client, dir string) *ImageSaver {
	if dir == "" {
		dir = "."
	}
	return &ImageSaver{client: client, dir: dir, used: make(map[string]bool)}
}

// Save downloads a's preferred image and returns the written path.
func (s *ImageSaver) Save(a *models.ArtistResult) (string, error) {
	data, err := DownloadImage(s.client, a.ImageURL())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	base := Slug(a.Name)
	name := base
	for i := 2; s.used[name]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[name] = true

	path := filepath.Join(s.dir, name+".jpg")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// Slug lower-cases name and joins its words with dashes, dropping anything that is not a letter or digit.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "artist"
	}
	return s
}

// WriteFile renders data into path, or to w when path is empty or "-".
func WriteFile(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
