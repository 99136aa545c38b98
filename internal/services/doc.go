// Package services defines the [ArtistService] interface and implements it for the remote artist search API.
//
// # Search API
//
// [APIService] issues GET {baseURL}/search?name={term} and decodes the body as a [models.ArtistResult].
// The payload shape is owned by the API and reflected as-is; see the models package for the accessors
// that pick the preferred image, listen link and similar artist names.
//
// Each request carries an X-Request-ID header generated with google/uuid.
// When an API token is configured, [NewAuthorizedClient] wraps the HTTP client with an oauth2 static token source.
//
// There is no timeout, retry or cancellation beyond the caller's context.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNetwork] : the request could not be sent, the body could not be read, or the status was not 2xx
//   - [shared.ErrParse] : the body was not an artist object
//   - [shared.ErrInvalidInput] : the term was empty after trimming (no request is made)
package services
