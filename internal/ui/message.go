package ui

import (
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/tasks"
)

// searchSubmittedMsg carries a committed term from the [SearchBar] up to the [Model].
type searchSubmittedMsg struct {
	query models.SearchQuery
}

// artistFetchedMsg is delivered when a lookup started by [Model.Search] resolves.
type artistFetchedMsg struct {
	result tasks.LookupResult
}

// browserOpenedMsg reports the outcome of opening a link.
type browserOpenedMsg struct {
	url string
	err error
}
