// package services defines interface ArtistService for looking up artists over HTTP
package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/discover/internal/models"
	"golang.org/x/oauth2"
)

// ArtistService looks up a single artist by search term.
type ArtistService interface {
	// Search issues one request for q and returns the decoded payload.
	// Errors wrap [shared.ErrNetwork] or [shared.ErrParse].
	Search(ctx context.Context, q models.SearchQuery) (*models.ArtistResult, error)
}

// NewAuthorizedClient returns an [http.Client] that sends token as a bearer credential.
//
// An empty token yields [http.DefaultClient].
func NewAuthorizedClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}
