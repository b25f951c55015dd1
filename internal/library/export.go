package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/models"
)

const (
	defaultExportWorkers = 4
	maxExportWorkers     = 10
	manifestName         = "export_manifest.json"
)

// ExportOpts configures [Library.ExportAll].
type ExportOpts struct {
	Format     formatter.Format // defaults to CSV
	OutputDir  string           // defaults to mymusic_export_<epoch>
	NumWorkers int              // concurrent writers, capped at 10
}

// PlaylistExportResult is the outcome of writing one playlist.
type PlaylistExportResult struct {
	Name   string `json:"name"`
	Tracks int    `json:"tracks"`
	File   string `json:"file,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ExportResult summarises a bulk export. It is also written as the manifest.
type ExportResult struct {
	Username     string                 `json:"username"`
	Format       formatter.Format       `json:"format"`
	OutputDir    string                 `json:"output_dir"`
	ExportedAt   time.Time              `json:"exported_at"`
	Successful   int                    `json:"successful"`
	Failed       int                    `json:"failed"`
	Playlists    []PlaylistExportResult `json:"playlists"`
	ManifestPath string                 `json:"-"`
}

// ExportAll writes every playlist of the session's user to opts.OutputDir and a manifest next to them.
//
// A failure to write one playlist is recorded in its result and does not stop the others.
func (l *Library) ExportAll(ctx context.Context, s auth.Session, opts ExportOpts) (*ExportResult, error) {
	playlists, err := l.Playlists(ctx, s)
	if err != nil {
		return nil, err
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatCSV
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("mymusic_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultExportWorkers
	}
	if opts.NumWorkers > maxExportWorkers {
		opts.NumWorkers = maxExportWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		Username:   s.Username(),
		Format:     opts.Format,
		OutputDir:  opts.OutputDir,
		ExportedAt: time.Now().UTC(),
		Playlists:  make([]PlaylistExportResult, 0, len(playlists)),
	}

	jobs := make(chan exportJob)
	results := make(chan PlaylistExportResult, len(playlists))
	bases := exportBases(playlists)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go l.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, p := range playlists {
			select {
			case <-ctx.Done():
				return
			case jobs <- exportJob{playlist: p, base: bases[i]}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.Error == "" {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Playlists = append(result.Playlists, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	sort.Slice(result.Playlists, func(i, j int) bool {
		return result.Playlists[i].Name < result.Playlists[j].Name
	})

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	l.logger.Info("export complete", "user", s.Username(), "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

func (l *Library) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}

		p := job.playlist
		res := PlaylistExportResult{Name: p.Name(), Tracks: len(p.Tracks())}
		path, err := formatter.WriteExport(opts.Format, opts.OutputDir, job.base, p.Name(), p.Tracks())
		if err != nil {
			res.Error = err.Error()
			l.logger.Warn("playlist export failed", "playlist", p.Name(), "error", err)
		} else {
			res.File = path
		}
		results <- res
	}
}

type exportJob struct {
	playlist *models.Playlist
	base     string
}

// exportBases returns one file base name per playlist, unique even when names only differ in
// characters [formatter.SafeFilename] replaces or in case. Later duplicates get a _2, _3... suffix.
func exportBases(playlists []*models.Playlist) []string {
	taken := make(map[string]bool, len(playlists))
	bases := make([]string, len(playlists))

	for i, p := range playlists {
		base := formatter.SafeFilename(p.Name())
		candidate := base
		for n := 2; taken[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", base, n)
		}
		taken[strings.ToLower(candidate)] = true
		bases[i] = candidate
	}
	return bases
}
