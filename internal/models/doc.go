// Package models defines domain entities for the mymusic service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing catalog data
//   - [Track] : Song metadata returned by the catalog search API
//
// 2. Persistent Entities: Database-backed records, each owned by exactly one user
//   - [Credential] : Username and bcrypt password hash
//   - [LikedSong] : A track the user liked
//   - [Playlist] : A named, ordered list of tracks
//   - [SearchRecord] : A query the user searched for
//   - [Download] : A track the user marked as downloaded
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
package models
