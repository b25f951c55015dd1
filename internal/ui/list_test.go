package ui

import (
	"strings"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
)

func TestTrackList(t *testing.T) {
	p := NewPalette("#000000", "#000000", "#000000", "#000000", "#000000")

	t.Run("numbers tracks", func(t *testing.T) {
		out := TrackList(p, "Liked Songs", []models.Track{
			{ID: "1", Name: "Heroes", Artists: []string{"David Bowie"}, Album: "Heroes", DurationMS: 371000},
			{ID: "2", Name: "Blue Monday", Artists: []string{"New Order"}},
		})

		for _, want := range []string{"Liked Songs", " 1. Heroes", "David Bowie • Heroes (6:11)", " 2. Blue Monday", "New Order"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		if out := TrackList(p, "Downloads", nil); !strings.Contains(out, "No tracks yet.") {
			t.Errorf("expected empty message, got %q", out)
		}
	})
}

func TestPlaylistList(t *testing.T) {
	p := NewPalette("#000000", "#000000", "#000000", "#000000", "#000000")

	one := models.NewPlaylist(1, "alice", "Road Trip")
	one.Append(models.Track{ID: "1", Name: "Heroes"})
	empty := models.NewPlaylist(2, "alice", "Focus")

	out := PlaylistList(p, []*models.Playlist{one, empty})
	for _, want := range []string{"Road Trip", "1 track", "Focus", "0 tracks"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if out := PlaylistList(p, nil); !strings.Contains(out, "No playlists yet.") {
		t.Errorf("expected empty message, got %q", out)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette
	if !strings.Contains(p.OK("saved"), "saved") {
		t.Error("expected OK to contain text")
	}
	if !strings.Contains(p.Err("failed"), "failed") {
		t.Error("expected Err to contain text")
	}
}
