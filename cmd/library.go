package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/library"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/desertthunder/mymusic/internal/ui"
	"github.com/urfave/cli/v3"
)

// librarySession checks the library is wired and logs in.
func (r *Runner) librarySession(ctx context.Context, cmd *cli.Command) (auth.Session, error) {
	if r.library == nil {
		return auth.Session{}, fmt.Errorf("%w: library not initialized", shared.ErrServiceUnavailable)
	}
	return r.session(ctx, cmd)
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func (r *Runner) writeTracks(cmd *cli.Command, title string, tracks []models.Track) error {
	if cmd.Bool("json") {
		if tracks == nil {
			tracks = []models.Track{}
		}
		return r.writeJSON(tracks, true)
	}
	return r.writePlain("%s", ui.TrackList(r.palette, title, tracks))
}

// Search queries the catalog and records the query in the user's history.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	query := cmd.StringArg("query")
	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Catalog.SearchLimit
	}

	tracks, err := r.library.Search(ctx, s, query, limit)
	if err != nil {
		return err
	}
	return r.writeTracks(cmd, fmt.Sprintf("Results for %q", strings.TrimSpace(query)), tracks)
}

// Like looks up a track by catalog ID and adds it to the user's liked songs.
func (r *Runner) Like(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}
	id, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}

	track, err := r.library.Lookup(ctx, s, id)
	if err != nil {
		return err
	}
	if err := r.library.Like(ctx, s, track); err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("%s added to liked songs!", track.Name)))
}

func (r *Runner) Likes(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	tracks, err := r.library.Likes(ctx, s)
	if err != nil {
		return err
	}
	return r.writeTracks(cmd, "Liked Songs", tracks)
}

// Download records a track as downloaded and prints its embed player URL.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}
	id, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}

	track, err := r.library.Lookup(ctx, s, id)
	if err != nil {
		return err
	}
	if err := r.library.Download(ctx, s, track); err != nil {
		return err
	}

	r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("%s downloaded!", track.Name)))
	return r.writePlain("%s\n", r.palette.Help(formatter.EmbedURL(track.URI)))
}

func (r *Runner) Downloads(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	tracks, err := r.library.Downloads(ctx, s)
	if err != nil {
		return err
	}
	return r.writeTracks(cmd, "Downloads", tracks)
}

func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	queries, err := r.library.History(ctx, s, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(queries, true)
	}

	r.writePlain("%s\n", r.palette.Title("Search History"))
	if len(queries) == 0 {
		return r.writePlain("%s\n", r.palette.Help("No searches yet."))
	}
	for _, q := range queries {
		r.writePlain("  %s\n", q)
	}
	return nil
}

func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	playlist, err := r.library.CreatePlaylist(ctx, s, cmd.StringArg("name"))
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("Playlist %q created", playlist.Name())))
}

// PlaylistAdd looks up a track by catalog ID and appends it to the named playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}
	id, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}

	track, err := r.library.Lookup(ctx, s, id)
	if err != nil {
		return err
	}

	playlist, err := r.library.AddToPlaylist(ctx, s, cmd.StringArg("name"), track)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("%s added to %s (%d tracks)", track.Name, playlist.Name(), len(playlist.Tracks()))))
}

func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	playlists, err := r.library.Playlists(ctx, s)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type summary struct {
			Name   string `json:"name"`
			Tracks int    `json:"tracks"`
		}
		out := make([]summary, 0, len(playlists))
		for _, p := range playlists {
			out = append(out, summary{Name: p.Name(), Tracks: len(p.Tracks())})
		}
		return r.writeJSON(out, true)
	}
	return r.writePlain("%s", ui.PlaylistList(r.palette, playlists))
}

func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	playlist, err := r.library.Playlist(ctx, s, cmd.StringArg("name"))
	if err != nil {
		return err
	}
	return r.writeTracks(cmd, playlist.Name(), playlist.Tracks())
}

// PlaylistExport writes one playlist to a file (or stdout), or every playlist with --all.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	s, err := r.librarySession(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd, s, format)
	}

	playlist, err := r.library.Playlist(ctx, s, cmd.StringArg("name"))
	if err != nil {
		return err
	}

	if cmd.Bool("stdout") {
		data, err := formatter.Export(format, playlist.Name(), playlist.Tracks())
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	dir := cmd.String("output")
	if dir == "" {
		dir = "."
	}
	path, err := formatter.WriteExport(format, dir, playlist.Name(), playlist.Name(), playlist.Tracks())
	if err != nil {
		return err
	}

	r.logger.Info("exported playlist", "name", playlist.Name(), "path", path)
	return r.writePlain("%s\n", r.palette.OK("Exported to "+path))
}

func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command, s auth.Session, format formatter.Format) error {
	result, err := r.library.ExportAll(ctx, s, library.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	})
	if err != nil {
		return err
	}

	for _, p := range result.Playlists {
		if p.Error != "" {
			r.writePlain("%s\n", r.palette.Err(fmt.Sprintf("%s: %s", p.Name, p.Error)))
			continue
		}
		r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("%s (%d tracks) → %s", p.Name, p.Tracks, p.File)))
	}

	r.writePlain("\nExported %d playlist(s), %d failed\n", result.Successful, result.Failed)
	return r.writePlain("%s\n", r.palette.Help("Manifest: "+result.ManifestPath))
}

// Play opens the embed player for a track URI, or prints its iframe with --embed.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	uri, err := requireArg(cmd, "uri")
	if err != nil {
		return err
	}

	if cmd.Bool("embed") {
		return r.writePlain("%s\n", formatter.EmbedIframe(uri, cmd.Bool("compact")))
	}

	url := formatter.EmbedURL(uri)
	if err := r.openBrowser(url); err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK("Opened "+url))
}
