// Package repositories implements SQLite persistence for credentials and per-user library records.
//
// Each repository stores one record kind in its own table. Tracks are kept as JSON documents so a
// row mirrors the document it came from, and every record carries the username that owns it.
//
// Key Implementations:
//   - [UserRepository] : Credential storage with a unique username index; implements auth.CredentialStore
//   - [LikeRepository] : Liked songs
//   - [PlaylistRepository] : Named playlists with append-only track lists
//   - [HistoryRepository] : Search history
//   - [DownloadRepository] : Download bookkeeping
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// They are taken from per-table counters inside the same transaction as the insert, so a failed insert
// does not consume one.
//
// Lookups that match nothing return errors wrapping [models.ErrNotFound]; unique index violations
// return errors wrapping [models.ErrConflict].
package repositories
