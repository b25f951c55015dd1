package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/models"
)

// trackItem renders a single [models.Track] as "Name • Artist • Album (m:ss)".
type trackItem struct {
	track models.Track
}

func (i trackItem) Title() string { return i.track.Name }
func (i trackItem) Description() string {
	desc := i.track.Artist()
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	if d := i.track.Duration(); d > 0 {
		desc = fmt.Sprintf("%s (%s)", desc, formatter.FormatDuration(d))
	}
	return desc
}

// playlistItem renders a [models.Playlist] as its name and track count.
type playlistItem struct {
	playlist *models.Playlist
}

func (i playlistItem) Title() string { return i.playlist.Name() }
func (i playlistItem) Description() string {
	n := len(i.playlist.Tracks())
	if n == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", n)
}

type item interface {
	Title() string
	Description() string
}

func render(p *Palette, title, empty string, items []item) string {
	var b strings.Builder
	b.WriteString(p.Title(title))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(p.Help(empty))
		b.WriteString("\n")
		return b.String()
	}

	for n, it := range items {
		fmt.Fprintf(&b, "%2d. %s", n+1, it.Title())
		if desc := it.Description(); desc != "" {
			b.WriteString("  ")
			b.WriteString(p.Help(desc))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TrackList renders tracks as a numbered list under title.
func TrackList(p *Palette, title string, tracks []models.Track) string {
	items := make([]item, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, trackItem{t})
	}
	return render(p, title, "No tracks yet.", items)
}

// PlaylistList renders playlists with their track counts.
func PlaylistList(p *Palette, playlists []*models.Playlist) string {
	items := make([]item, 0, len(playlists))
	for _, pl := range playlists {
		items = append(items, playlistItem{pl})
	}
	return render(p, "Playlists", "No playlists yet.", items)
}
