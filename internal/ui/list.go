package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
)

var _ list.Item = trackItem{}

// trackItem pairs a top track with its positional listen URL to implement [list.Item].
type trackItem struct {
	position int
	name     string
	url      string
}

func (i trackItem) FilterValue() string { return i.name }
func (i trackItem) Title() string       { return fmt.Sprintf("%d. %s", i.position, i.name) }
func (i trackItem) Description() string {
	if i.url == "" {
		return formatter.Placeholder
	}
	return i.url
}

// trackItems builds list items for every top track of a.
func trackItems(a *models.ArtistResult) []list.Item {
	if a == nil {
		return nil
	}
	items := make([]list.Item, len(a.TopTracks))
	for i, name := range a.TopTracks {
		items[i] = trackItem{position: i + 1, name: name, url: a.TrackURL(i)}
	}
	return items
}

func newTrackList(width, height int) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Top Tracks"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
