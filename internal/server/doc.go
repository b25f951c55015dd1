// Package server exposes the music discovery service over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally, registering "METHOD /path" patterns.
//
// # Sessions
//
// Login hands back an explicit auth.Session. [SessionStore] keeps those sessions in memory keyed by a random
// cookie value, and [SessionStore.Require] rejects requests without a live session with 401.
//
// # API
//
// [API] wires the credential manager and library behind JSON endpoints:
//
//	POST /signup, POST /login, POST /logout
//	GET  /me, GET /search?q=, GET /history
//	GET|POST /likes, GET|POST /downloads
//	GET|POST /playlists, GET /playlists/{name}
//	POST /playlists/{name}/tracks, GET /playlists/{name}/export?format=
//	GET  /health, GET /metrics
//
// Errors are returned as {"error": "..."} with a status derived from the domain error.
//
// # Metrics
//
// [Metrics] owns a Prometheus registry with request counters, latency histograms and auth outcome counters.
// Routes are labelled by their registered pattern.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
