package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
)

// LikeStore persists liked songs.
type LikeStore interface {
	Create(ctx context.Context, like *models.LikedSong) error
	ListByUser(ctx context.Context, username string) ([]*models.LikedSong, error)
}

// DownloadStore persists download records.
type DownloadStore interface {
	Create(ctx context.Context, download *models.Download) error
	ListByUser(ctx context.Context, username string) ([]*models.Download, error)
}

// PlaylistStore persists playlists. Errors match [models.ErrNotFound] and [models.ErrConflict].
type PlaylistStore interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByName(ctx context.Context, username, name string) (*models.Playlist, error)
	PushTrack(ctx context.Context, username, name string, track models.Track) (*models.Playlist, error)
	ListByUser(ctx context.Context, username string) ([]*models.Playlist, error)
}

// HistoryStore persists search history.
type HistoryStore interface {
	Create(ctx context.Context, rec *models.SearchRecord) error
	ListByUser(ctx context.Context, username string, limit int) ([]*models.SearchRecord, error)
}

// Stores groups the persistence dependencies of a [Library].
type Stores struct {
	Likes     LikeStore
	Downloads DownloadStore
	Playlists PlaylistStore
	History   HistoryStore
}

// Library runs user-scoped operations against the catalog and stores.
type Library struct {
	catalog services.Catalog
	stores  Stores
	logger  *log.Logger
}

// New creates a Library. catalog may be nil, in which case Search reports the catalog as unavailable.
func New(catalog services.Catalog, stores Stores, logger *log.Logger) *Library {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Library{catalog: catalog, stores: stores, logger: logger}
}

func requireSession(s auth.Session) (string, error) {
	if !s.Authenticated() {
		return "", shared.ErrNotAuthenticated
	}
	return s.Username(), nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Search records query in the user's history and then asks the catalog for up to limit tracks.
//
// The history entry is kept even when the catalog call fails.
func (l *Library) Search(ctx context.Context, s auth.Session, query string, limit int) ([]models.Track, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := l.stores.History.Create(ctx, models.NewSearchRecord(0, username, query)); err != nil {
		return nil, storageErr("save search history", err)
	}

	if l.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not configured", shared.ErrServiceUnavailable)
	}

	tracks, err := l.catalog.Search(ctx, query, limit)
	if err != nil {
		l.logger.Warn("catalog search failed", "user", username, "error", err)
		return nil, err
	}

	l.logger.Debug("search", "user", username, "results", len(tracks))
	return tracks, nil
}

// Lookup fetches a single track from the catalog by ID.
func (l *Library) Lookup(ctx context.Context, s auth.Session, id string) (models.Track, error) {
	if _, err := requireSession(s); err != nil {
		return models.Track{}, err
	}
	if l.catalog == nil {
		return models.Track{}, fmt.Errorf("%w: catalog not configured", shared.ErrServiceUnavailable)
	}
	return l.catalog.Track(ctx, id)
}

// Like adds track to the user's liked songs.
func (l *Library) Like(ctx context.Context, s auth.Session, track models.Track) error {
	username, err := requireSession(s)
	if err != nil {
		return err
	}
	if track.ID == "" {
		return ErrMissingTrack
	}

	if err := l.stores.Likes.Create(ctx, models.NewLikedSong(0, username, track)); err != nil {
		return storageErr("like", err)
	}
	return nil
}

// Likes lists the user's liked tracks in the order they were liked.
func (l *Library) Likes(ctx context.Context, s auth.Session) ([]models.Track, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	likes, err := l.stores.Likes.ListByUser(ctx, username)
	if err != nil {
		return nil, storageErr("list likes", err)
	}

	tracks := make([]models.Track, 0, len(likes))
	for _, like := range likes {
		tracks = append(tracks, like.Track())
	}
	return tracks, nil
}

// Download records track as downloaded by the user. No audio is fetched.
func (l *Library) Download(ctx context.Context, s auth.Session, track models.Track) error {
	username, err := requireSession(s)
	if err != nil {
		return err
	}
	if track.ID == "" {
		return ErrMissingTrack
	}

	if err := l.stores.Downloads.Create(ctx, models.NewDownload(0, username, track)); err != nil {
		return storageErr("download", err)
	}
	return nil
}

// Downloads lists the user's downloaded tracks.
func (l *Library) Downloads(ctx context.Context, s auth.Session) ([]models.Track, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	downloads, err := l.stores.Downloads.ListByUser(ctx, username)
	if err != nil {
		return nil, storageErr("list downloads", err)
	}

	tracks := make([]models.Track, 0, len(downloads))
	for _, d := range downloads {
		tracks = append(tracks, d.Track())
	}
	return tracks, nil
}

// CreatePlaylist creates an empty playlist called name.
func (l *Library) CreatePlaylist(ctx context.Context, s auth.Session, name string) (*models.Playlist, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingPlaylistName
	}

	playlist := models.NewPlaylist(0, username, name)
	if err := l.stores.Playlists.Create(ctx, playlist); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("%w: %q", ErrPlaylistExists, name)
		}
		return nil, storageErr("create playlist", err)
	}

	return playlist, nil
}

// AddToPlaylist appends track to the user's playlist called name.
//
// Adding a track whose ID is already present fails with [ErrAlreadyInPlaylist] and leaves the playlist unchanged.
func (l *Library) AddToPlaylist(ctx context.Context, s auth.Session, name string, track models.Track) (*models.Playlist, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingPlaylistName
	}
	if track.ID == "" {
		return nil, ErrMissingTrack
	}

	playlist, err := l.stores.Playlists.PushTrack(ctx, username, name, track)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	case errors.Is(err, models.ErrConflict):
		return nil, ErrAlreadyInPlaylist
	case err != nil:
		return nil, storageErr("add to playlist", err)
	}

	return playlist, nil
}

// Playlist returns the user's playlist called name.
func (l *Library) Playlist(ctx context.Context, s auth.Session, name string) (*models.Playlist, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingPlaylistName
	}

	playlist, err := l.stores.Playlists.GetByName(ctx, username, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	}
	if err != nil {
		return nil, storageErr("get playlist", err)
	}
	return playlist, nil
}

// Playlists lists the user's playlists in creation order.
func (l *Library) Playlists(ctx context.Context, s auth.Session) ([]*models.Playlist, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	playlists, err := l.stores.Playlists.ListByUser(ctx, username)
	if err != nil {
		return nil, storageErr("list playlists", err)
	}
	return playlists, nil
}

// ExportPlaylist renders the user's playlist called name in format f.
func (l *Library) ExportPlaylist(ctx context.Context, s auth.Session, name string, f formatter.Format) ([]byte, error) {
	playlist, err := l.Playlist(ctx, s, name)
	if err != nil {
		return nil, err
	}
	return formatter.Export(f, playlist.Name(), playlist.Tracks())
}

// History returns the user's most recent searches first. A limit <= 0 returns everything.
func (l *Library) History(ctx context.Context, s auth.Session, limit int) ([]string, error) {
	username, err := requireSession(s)
	if err != nil {
		return nil, err
	}

	records, err := l.stores.History.ListByUser(ctx, username, limit)
	if err != nil {
		return nil, storageErr("list history", err)
	}

	queries := make([]string, 0, len(records))
	for _, r := range records {
		queries = append(queries, r.Query())
	}
	return queries, nil
}
