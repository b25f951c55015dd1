// Package services implements the music catalog client.
//
// # Catalog
//
// [Catalog] is the read-only view of the third-party music catalog the library searches.
// [CatalogService] implements it against a Spotify-compatible HTTP proxy (e.g. nocodeapi):
// every call is GET <endpoint>/<path>?<params> with the configured API key sent as a Bearer token.
//
// The key is attached by an [oauth2.StaticTokenSource] transport and outgoing calls are paced by a
// [rate.Limiter] built from catalog.rate_limit.
//
// # Error Handling
//
//   - [shared.ErrMissingAPIKey] : no catalog.api_key configured
//   - [shared.ErrAPIRequest] : transport failure, non-2xx status or an undecodable body
//   - [ErrTrackNotFound] : a track lookup matched nothing
//
// # API Mappings
//
// Catalog responses are decoded into [SpotifyTrack] and mapped to [models.Track] with
// artist names flattened and the album reduced to its name.
package services
