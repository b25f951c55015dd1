package models

import "strings"

// Track represents a song returned by the catalog API.
//
// It is stored verbatim as a JSON document inside likes, playlists and downloads.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists,omitempty"`
	Album      string   `json:"album,omitempty"`
	URI        string   `json:"uri"`
	DurationMS int      `json:"duration_ms,omitempty"`
	Popularity int      `json:"popularity,omitempty"`
}

// Artist returns the artists joined with ", ".
func (t Track) Artist() string {
	return strings.Join(t.Artists, ", ")
}

// Duration returns the track length in whole seconds.
func (t Track) Duration() int {
	return t.DurationMS / 1000
}
