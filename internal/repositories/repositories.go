// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/mattn/go-sqlite3"
)

// nextSequence increments and returns the sequence counter for table within tx.
func nextSequence(ctx context.Context, tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}

// insertSequenced runs insert with the next sequence number for table, committing both or neither.
func insertSequenced(ctx context.Context, db *sql.DB, table string, insert func(tx *sql.Tx, sequence int) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := nextSequence(ctx, tx, table)
	if err != nil {
		return err
	}

	if err := insert(tx, sequence); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func encodeTrack(track models.Track) (string, error) {
	data, err := json.Marshal(track)
	if err != nil {
		return "", fmt.Errorf("failed to encode track: %w", err)
	}
	return string(data), nil
}

func decodeTrack(data string) (models.Track, error) {
	var track models.Track
	if err := json.Unmarshal([]byte(data), &track); err != nil {
		return models.Track{}, fmt.Errorf("failed to decode track: %w", err)
	}
	return track, nil
}

func encodeTracks(tracks []models.Track) (string, error) {
	if tracks == nil {
		tracks = []models.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tracks: %w", err)
	}
	return string(data), nil
}

func decodeTracks(data string) ([]models.Track, error) {
	var tracks []models.Track
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil, fmt.Errorf("failed to decode tracks: %w", err)
	}
	return tracks, nil
}
