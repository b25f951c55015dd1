// Package library implements the user-scoped music operations: searching the catalog,
// liking, downloading, playlists and search history.
//
// Every operation takes the [auth.Session] returned by a successful login. A session that did not
// come from a login is rejected with [shared.ErrNotAuthenticated] before any store is touched, and
// all reads and writes are scoped to the session's username.
//
// Storage is reached through the small store interfaces in this package, implemented by the
// repositories package for SQLite. The catalog is any [services.Catalog].
//
// # Bulk Export
//
// [Library.ExportAll] writes every playlist of a user to disk with a bounded worker pool and a
// manifest summarising the run.
package library
