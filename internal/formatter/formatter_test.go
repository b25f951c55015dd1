package formatter

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

func testTracks() []models.Track {
	return []models.Track{
		{
			ID:         "track1",
			Name:       "Song One",
			Artists:    []string{"Artist One"},
			Album:      "Album One",
			URI:        "spotify:track:track1",
			DurationMS: 180000,
		},
		{
			ID:         "track2",
			Name:       "Song, Two",
			Artists:    []string{"Artist Two", "Guest"},
			URI:        "spotify:track:track2",
			DurationMS: 245000,
		},
	}
}

func TestEmbedURL(t *testing.T) {
	tc := []struct {
		name string
		uri  string
		want string
	}{
		{name: "track uri", uri: "spotify:track:4uLU6hMCjMI75M1A2tKUQC", want: "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC"},
		{name: "bare id", uri: "abc", want: "https://open.spotify.com/embed/track/abc"},
		{name: "empty", uri: "", want: "https://open.spotify.com/embed/track/"},
		{name: "trailing colon", uri: "spotify:track:", want: "https://open.spotify.com/embed/track/"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmbedURL(tt.uri); got != tt.want {
				t.Errorf("EmbedURL(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}

	t.Run("iframe", func(t *testing.T) {
		compact := EmbedIframe("spotify:track:abc", true)
		if !strings.Contains(compact, `height="80"`) || !strings.Contains(compact, "embed/track/abc") {
			t.Errorf("unexpected compact iframe %s", compact)
		}
		if full := EmbedIframe("spotify:track:abc", false); !strings.Contains(full, `height="352"`) {
			t.Errorf("unexpected iframe %s", full)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{185, "3:05"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}

	for _, tt := range tc {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportCSV", func(t *testing.T) {
		data, err := ExportCSV(testTracks())
		if err != nil {
			t.Fatalf("ExportCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Name,Artist,Album,Duration,URI,Embed" {
			t.Errorf("CSV missing headers, got: %v", records[0])
		}
		if records[2][1] != "Song, Two" {
			t.Errorf("expected quoted name to round-trip, got %q", records[2][1])
		}
		if records[2][2] != "Artist Two, Guest" {
			t.Errorf("expected joined artists, got %q", records[2][2])
		}
		if records[1][4] != "180" {
			t.Errorf("expected duration in seconds, got %q", records[1][4])
		}
		if records[1][6] != "https://open.spotify.com/embed/track/track1" {
			t.Errorf("unexpected embed column %q", records[1][6])
		}
	})

	t.Run("ExportMarkdown", func(t *testing.T) {
		data, err := ExportMarkdown("Road Trip", testTracks())
		if err != nil {
			t.Fatalf("ExportMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Road Trip",
			"**Tracks**: 2",
			"1. Artist One - Song One (Album One) [3:00]",
			"2. Artist Two, Guest - Song, Two [4:05]",
			"([play](https://open.spotify.com/embed/track/track2))",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportMarkdown Empty", func(t *testing.T) {
		data, err := ExportMarkdown("Empty", nil)
		if err != nil {
			t.Fatalf("ExportMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "No tracks yet") {
			t.Errorf("expected empty-state line, got %s", data)
		}
	})

	t.Run("ExportText", func(t *testing.T) {
		data, err := ExportText("Road Trip", testTracks())
		if err != nil {
			t.Fatalf("ExportText failed: %v", err)
		}
		if !strings.Contains(string(data), "Playlist: Road Trip") || !strings.Contains(string(data), "1. Artist One - Song One") {
			t.Errorf("unexpected text export %s", data)
		}
	})

	t.Run("RenderHTML", func(t *testing.T) {
		md, _ := ExportMarkdown("Road Trip", testTracks())
		html, err := RenderHTML(md)
		if err != nil {
			t.Fatalf("RenderHTML failed: %v", err)
		}

		output := string(html)
		if !strings.Contains(output, "<h1>Road Trip</h1>") {
			t.Errorf("expected heading, got %s", output)
		}
		if !strings.Contains(output, `<a href="https://open.spotify.com/embed/track/track1">play</a>`) {
			t.Errorf("expected player link, got %s", output)
		}
	})

	t.Run("RenderHTML Escapes Raw HTML", func(t *testing.T) {
		html, err := RenderHTML([]byte("<script>alert(1)</script>"))
		if err != nil {
			t.Fatalf("RenderHTML failed: %v", err)
		}
		if strings.Contains(string(html), "<script>") {
			t.Errorf("raw HTML should not pass through, got %s", html)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: "markdown", want: FormatMarkdown},
		{in: "md", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "html", want: FormatHTML},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}

	if FormatHTML.ContentType() != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %s", FormatHTML.ContentType())
	}
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteExport(FormatMarkdown, dir, "Road/Trip", "Road/Trip", testTracks())
	if err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	if filepath.Base(path) != "Road_Trip.md" {
		t.Errorf("expected sanitized file name, got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "# Road/Trip") {
		t.Errorf("unexpected file contents %s", data)
	}

	if _, err := WriteExport(Format("pdf"), dir, "x", "x", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSafeFilename(t *testing.T) {
	if got := SafeFilename("  "); got != "untitled" {
		t.Errorf("expected untitled, got %q", got)
	}
	if got := SafeFilename(`a:b*c?"d`); got != "a_b_c__d" {
		t.Errorf("unexpected sanitized name %q", got)
	}
}
