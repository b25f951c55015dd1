package services

import (
	"context"
	"errors"

	"github.com/desertthunder/mymusic/internal/models"
)

// DefaultSearchLimit is the number of results returned when a caller passes a limit <= 0.
const DefaultSearchLimit = 10

var ErrTrackNotFound = errors.New("track not found")

// Catalog searches the third-party music catalog.
type Catalog interface {
	// Search returns up to limit tracks matching query.
	Search(ctx context.Context, query string, limit int) ([]models.Track, error)

	// Track looks up a single track by its catalog ID.
	Track(ctx context.Context, id string) (models.Track, error)
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// ToTrack maps the catalog representation to [models.Track].
func (t SpotifyTrack) ToTrack() models.Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	return models.Track{
		ID:         t.ID,
		Name:       t.Name,
		Artists:    artists,
		Album:      t.Album.Name,
		URI:        t.URI,
		DurationMS: t.DurationMS,
		Popularity: t.Popularity,
	}
}

// searchResponse is the body of GET search?type=track.
type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

// tracksResponse is the body of GET tracks?ids=.
type tracksResponse struct {
	Tracks []*SpotifyTrack `json:"tracks"`
}
