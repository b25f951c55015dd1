package models

import (
	"errors"
	"testing"
)

func TestPlaylist(t *testing.T) {
	t.Run("Append And Contains", func(t *testing.T) {
		p := NewPlaylist(0, "alice", "road trip")

		if p.Contains("t1") {
			t.Error("empty playlist should not contain t1")
		}

		p.Append(Track{ID: "t1", Name: "One"})
		p.Append(Track{ID: "t2", Name: "Two"})

		if !p.Contains("t1") || !p.Contains("t2") {
			t.Error("expected playlist to contain appended tracks")
		}

		if got := len(p.Tracks()); got != 2 {
			t.Errorf("expected 2 tracks, got %d", got)
		}
	})

	t.Run("Tracks Returns Copy", func(t *testing.T) {
		p := NewPlaylist(0, "alice", "road trip")
		p.Append(Track{ID: "t1"})

		tracks := p.Tracks()
		tracks[0].ID = "changed"

		if !p.Contains("t1") {
			t.Error("mutating the returned slice should not change the playlist")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewPlaylist(0, "", "name").Validate(); !errors.Is(err, ErrMissingUsername) {
			t.Errorf("expected ErrMissingUsername, got %v", err)
		}
		if err := NewPlaylist(0, "alice", "").Validate(); !errors.Is(err, ErrMissingName) {
			t.Errorf("expected ErrMissingName, got %v", err)
		}
		if err := NewPlaylist(0, "alice", "name").Validate(); err != nil {
			t.Errorf("expected valid playlist, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	track := Track{ID: "t1", Name: "Song"}

	tc := []struct {
		name  string
		model Model
		want  error
	}{
		{name: "credential", model: NewCredential(0, "alice", []byte("hash")), want: nil},
		{name: "credential with empty username", model: NewCredential(0, "", []byte("hash")), want: nil},
		{name: "credential without hash", model: NewCredential(0, "alice", nil), want: ErrMissingHash},
		{name: "like", model: NewLikedSong(0, "alice", track), want: nil},
		{name: "like without owner", model: NewLikedSong(0, "", track), want: ErrMissingUsername},
		{name: "like without track", model: NewLikedSong(0, "alice", Track{}), want: ErrMissingTrack},
		{name: "download", model: NewDownload(0, "alice", track), want: nil},
		{name: "download without track", model: NewDownload(0, "alice", Track{}), want: ErrMissingTrack},
		{name: "search", model: NewSearchRecord(0, "alice", "daft punk"), want: nil},
		{name: "search without query", model: NewSearchRecord(0, "alice", ""), want: ErrMissingQuery},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTrack(t *testing.T) {
	track := Track{Artists: []string{"Daft Punk", "Pharrell Williams"}, DurationMS: 248413}

	if got := track.Artist(); got != "Daft Punk, Pharrell Williams" {
		t.Errorf("Artist() = %q", got)
	}

	if got := track.Duration(); got != 248 {
		t.Errorf("Duration() = %d, want 248", got)
	}
}
