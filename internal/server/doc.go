// Package server provides HTTP routing, middleware, and a fixture stand-in for the artist search API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] is applied in the order it is added; the first one added runs outermost.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
// The stack is built from go-chi/chi middleware and rs/cors, adapted to [Middleware]:
//
//   - [RequestID] : echoes or generates X-Request-ID
//   - [RequestLogger] : one charmbracelet/log line per request, including recovered panics
//   - [Recover] : converts handler panics into 500 responses
//   - [CORS] : lets browser front ends call the API from any origin
//
// # Fixture API
//
// [FixtureHandler] answers GET /search?name= with embedded artist payloads in the same shape as the remote API.
// Missing names are a 400, unknown artists a 404, both with a JSON {"error": ...} body.
// The discover fixture serve command runs it through [NewFixtureServer] for demos and local development.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
