package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/models"
	th "github.com/desertthunder/mymusic/internal/testing"
)

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	alice := auth.NewSession("alice")

	t.Run("writes every playlist and a manifest", func(t *testing.T) {
		lib := newTestLibrary(t, nil)
		for _, name := range []string{"Road Trip", "Focus", "Late/Night"} {
			if _, err := lib.CreatePlaylist(ctx, alice, name); err != nil {
				t.Fatalf("CreatePlaylist() error = %v", err)
			}
		}
		lib.AddToPlaylist(ctx, alice, "Focus", th.SampleTracks()[1])

		dir := filepath.Join(t.TempDir(), "out")
		result, err := lib.ExportAll(ctx, alice, ExportOpts{Format: formatter.FormatMarkdown, OutputDir: dir, NumWorkers: 2})
		if err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}

		if result.Successful != 3 || result.Failed != 0 {
			t.Errorf("expected 3 successful exports, got %d/%d", result.Successful, result.Failed)
		}

		for _, file := range []string{"Road Trip.md", "Focus.md", "Late_Night.md"} {
			th.AssertFileExists(t, filepath.Join(dir, file))
		}

		var manifest ExportResult
		if err := json.Unmarshal([]byte(th.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if manifest.Username != "alice" || len(manifest.Playlists) != 3 {
			t.Errorf("unexpected manifest %+v", manifest)
		}
		if manifest.Playlists[0].Name != "Focus" || manifest.Playlists[0].Tracks != 1 {
			t.Errorf("expected playlists sorted by name with track counts, got %+v", manifest.Playlists[0])
		}
	})

	t.Run("names that sanitize to the same file", func(t *testing.T) {
		lib := newTestLibrary(t, nil)
		tracks := th.SampleTracks()
		for i, name := range []string{"rock/pop", "rock?pop", "Rock:Pop"} {
			if _, err := lib.CreatePlaylist(ctx, alice, name); err != nil {
				t.Fatalf("CreatePlaylist() error = %v", err)
			}
			if _, err := lib.AddToPlaylist(ctx, alice, name, tracks[i]); err != nil {
				t.Fatalf("AddToPlaylist() error = %v", err)
			}
		}

		dir := t.TempDir()
		result, err := lib.ExportAll(ctx, alice, ExportOpts{Format: formatter.FormatCSV, OutputDir: dir, NumWorkers: 3})
		if err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}
		if result.Successful != 3 {
			t.Fatalf("expected 3 successful exports, got %d", result.Successful)
		}

		files := make(map[string]string)
		for _, p := range result.Playlists {
			if prev, ok := files[p.File]; ok {
				t.Errorf("%q and %q were both written to %s", prev, p.Name, p.File)
			}
			files[p.File] = p.Name
		}

		for _, file := range []string{"rock_pop.csv", "rock_pop_2.csv", "Rock_Pop_3.csv"} {
			th.AssertFileExists(t, filepath.Join(dir, file))
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 4 {
			t.Errorf("expected 3 exports and a manifest on disk, got %d entries", len(entries))
		}

		for i, name := range []string{"rock/pop", "rock?pop", "Rock:Pop"} {
			for _, p := range result.Playlists {
				if p.Name == name && !strings.Contains(th.MustReadFile(t, p.File), tracks[i].Name) {
					t.Errorf("%s does not hold the tracks of %q", p.File, name)
				}
			}
		}
	})

	t.Run("no playlists", func(t *testing.T) {
		lib := newTestLibrary(t, nil)

		result, err := lib.ExportAll(ctx, alice, ExportOpts{OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}
		if result.Successful != 0 || result.Format != formatter.FormatCSV {
			t.Errorf("unexpected result %+v", result)
		}
		th.AssertFileExists(t, result.ManifestPath)
	})

	t.Run("unknown format is recorded per playlist", func(t *testing.T) {
		lib := newTestLibrary(t, nil)
		lib.CreatePlaylist(ctx, alice, "Mix")

		result, err := lib.ExportAll(ctx, alice, ExportOpts{Format: "pdf", OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("ExportAll() error = %v", err)
		}
		if result.Failed != 1 || result.Playlists[0].Error == "" {
			t.Errorf("expected one failed export, got %+v", result)
		}
	})
}

func TestExportBases(t *testing.T) {
	tc := []struct {
		names []string
		want  []string
	}{
		{[]string{"Focus", "Road Trip"}, []string{"Focus", "Road Trip"}},
		{[]string{"a/b", "a?b", "a_b"}, []string{"a_b", "a_b_2", "a_b_3"}},
		{[]string{"a_b_2", "a/b", "a?b"}, []string{"a_b_2", "a_b", "a_b_3"}},
		{[]string{"Mix", "mix"}, []string{"Mix", "mix_2"}},
		{[]string{" ", "untitled"}, []string{"untitled", "untitled_2"}},
	}

	for _, tt := range tc {
		playlists := make([]*models.Playlist, 0, len(tt.names))
		for i, name := range tt.names {
			playlists = append(playlists, models.NewPlaylist(i+1, "alice", name))
		}

		got := exportBases(playlists)
		if !slices.Equal(got, tt.want) {
			t.Errorf("exportBases(%q) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
