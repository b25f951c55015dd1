package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// PlaylistRepository stores [models.Playlist] documents, keyed by (username, name).
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist with generated ID and sequence.
//
// A second playlist with the same owner and name yields an error wrapping [models.ErrConflict].
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data, err := encodeTracks(playlist.Tracks())
	if err != nil {
		return err
	}

	id := shared.GenerateID()
	err = insertSequenced(ctx, r.db, "playlists", func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO playlists (id, sequence, username, name, tracks_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			id, sequence, playlist.Username(), playlist.Name(), data, playlist.CreatedAt(), playlist.UpdatedAt())
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("playlist %q: %w", playlist.Name(), models.ErrConflict)
			}
			return fmt.Errorf("failed to insert playlist: %w", err)
		}
		playlist.SetSequence(sequence)
		return nil
	})
	if err != nil {
		return err
	}

	playlist.SetID(id)
	return nil
}

// GetByName retrieves username's playlist called name.
func (r *PlaylistRepository) GetByName(ctx context.Context, username, name string) (*models.Playlist, error) {
	query := `
		SELECT id, sequence, username, name, tracks_json, created_at, updated_at
		FROM playlists
		WHERE username = ? AND name = ?
	`

	playlist, err := r.scanOne(r.db.QueryRowContext(ctx, query, username, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("playlist %q: %w", name, models.ErrNotFound)
	}
	return playlist, err
}

// PushTrack appends track to username's playlist called name and returns the updated playlist.
//
// It fails with [models.ErrNotFound] when the playlist does not exist and with [models.ErrConflict]
// when a track with the same ID is already in it.
func (r *PlaylistRepository) PushTrack(ctx context.Context, username, name string, track models.Track) (*models.Playlist, error) {
	if track.ID == "" {
		return nil, models.ErrMissingTrack
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, sequence, username, name, tracks_json, created_at, updated_at
		FROM playlists
		WHERE username = ? AND name = ?
	`
	playlist, err := r.scanOne(tx.QueryRowContext(ctx, query, username, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("playlist %q: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if playlist.Contains(track.ID) {
		return nil, fmt.Errorf("track %q in playlist %q: %w", track.ID, name, models.ErrConflict)
	}

	playlist.Append(track)
	playlist.SetUpdatedAt(time.Now().UTC())

	data, err := encodeTracks(playlist.Tracks())
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE playlists SET tracks_json = ?, updated_at = ? WHERE id = ?",
		data, playlist.UpdatedAt(), playlist.ID(),
	); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return playlist, nil
}

// ListByUser returns username's playlists in creation order.
func (r *PlaylistRepository) ListByUser(ctx context.Context, username string) ([]*models.Playlist, error) {
	query := `
		SELECT id, sequence, username, name, tracks_json, created_at, updated_at
		FROM playlists
		WHERE username = ?
		ORDER BY sequence ASC
	`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *PlaylistRepository) scanOne(row scanner) (*models.Playlist, error) {
	var (
		id, owner, name, data string
		sequence              int
		createdAt, updatedAt  time.Time
	)

	if err := row.Scan(&id, &sequence, &owner, &name, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	tracks, err := decodeTracks(data)
	if err != nil {
		return nil, err
	}

	playlist := models.NewPlaylist(sequence, owner, name)
	playlist.SetID(id)
	playlist.SetTracks(tracks)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)

	return playlist, nil
}
