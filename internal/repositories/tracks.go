package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// trackRow is a scanned row of a per-user track table.
type trackRow struct {
	id        string
	sequence  int
	username  string
	track     models.Track
	createdAt time.Time
	updatedAt time.Time
}

// trackTable stores {username, track} documents in a single table. Likes and downloads share it.
type trackTable struct {
	db    *sql.DB
	table string
}

func (t trackTable) insert(ctx context.Context, username string, track models.Track, createdAt, updatedAt time.Time) (string, int, error) {
	data, err := encodeTrack(track)
	if err != nil {
		return "", 0, err
	}

	id := shared.GenerateID()
	var seq int

	err = insertSequenced(ctx, t.db, t.table, func(tx *sql.Tx, sequence int) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, sequence, username, track_id, track_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, t.table)
		if _, err := tx.ExecContext(ctx, query, id, sequence, username, track.ID, data, createdAt, updatedAt); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", t.table, err)
		}
		seq = sequence
		return nil
	})
	if err != nil {
		return "", 0, err
	}

	return id, seq, nil
}

func (t trackTable) listByUser(ctx context.Context, username string) ([]trackRow, error) {
	query := fmt.Sprintf(`
		SELECT id, sequence, username, track_json, created_at, updated_at
		FROM %s
		WHERE username = ?
		ORDER BY sequence ASC
	`, t.table)

	rows, err := t.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.table, err)
	}
	defer rows.Close()

	var result []trackRow
	for rows.Next() {
		var (
			row  trackRow
			data string
		)
		if err := rows.Scan(&row.id, &row.sequence, &row.username, &data, &row.createdAt, &row.updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.table, err)
		}
		if row.track, err = decodeTrack(data); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// LikeRepository stores [models.LikedSong] records.
type LikeRepository struct {
	tracks trackTable
}

// NewLikeRepository creates a new [LikeRepository] with the given database connection
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{tracks: trackTable{db: db, table: "liked_songs"}}
}

// Create inserts a like with a generated ID and sequence.
func (r *LikeRepository) Create(ctx context.Context, like *models.LikedSong) error {
	if err := like.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, sequence, err := r.tracks.insert(ctx, like.Username(), like.Track(), like.CreatedAt(), like.UpdatedAt())
	if err != nil {
		return err
	}

	like.SetID(id)
	like.SetSequence(sequence)
	return nil
}

// ListByUser returns username's likes in the order they were created.
func (r *LikeRepository) ListByUser(ctx context.Context, username string) ([]*models.LikedSong, error) {
	rows, err := r.tracks.listByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	likes := make([]*models.LikedSong, 0, len(rows))
	for _, row := range rows {
		like := models.NewLikedSong(row.sequence, row.username, row.track)
		like.SetID(row.id)
		like.SetCreatedAt(row.createdAt)
		like.SetUpdatedAt(row.updatedAt)
		likes = append(likes, like)
	}
	return likes, nil
}

// DownloadRepository stores [models.Download] records.
type DownloadRepository struct {
	tracks trackTable
}

// NewDownloadRepository creates a new [DownloadRepository] with the given database connection
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{tracks: trackTable{db: db, table: "downloaded_songs"}}
}

// Create inserts a download record with a generated ID and sequence.
func (r *DownloadRepository) Create(ctx context.Context, download *models.Download) error {
	if err := download.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, sequence, err := r.tracks.insert(ctx, download.Username(), download.Track(), download.CreatedAt(), download.UpdatedAt())
	if err != nil {
		return err
	}

	download.SetID(id)
	download.SetSequence(sequence)
	return nil
}

// ListByUser returns username's downloads in the order they were created.
func (r *DownloadRepository) ListByUser(ctx context.Context, username string) ([]*models.Download, error) {
	rows, err := r.tracks.listByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	downloads := make([]*models.Download, 0, len(rows))
	for _, row := range rows {
		download := models.NewDownload(row.sequence, row.username, row.track)
		download.SetID(row.id)
		download.SetCreatedAt(row.createdAt)
		download.SetUpdatedAt(row.updatedAt)
		downloads = append(downloads, download)
	}
	return downloads, nil
}
