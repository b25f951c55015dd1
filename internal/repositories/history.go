package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// HistoryRepository stores [models.SearchRecord] entries.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a search record with a generated ID and sequence.
func (r *HistoryRepository) Create(ctx context.Context, rec *models.SearchRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	err := insertSequenced(ctx, r.db, "search_history", func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO search_history (id, sequence, username, query, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query, id, sequence, rec.Username(), rec.Query(), rec.CreatedAt(), rec.UpdatedAt()); err != nil {
			return fmt.Errorf("failed to insert search record: %w", err)
		}
		rec.SetSequence(sequence)
		return nil
	})
	if err != nil {
		return err
	}

	rec.SetID(id)
	return nil
}

// ListByUser returns username's most recent searches first. A limit <= 0 returns all of them.
func (r *HistoryRepository) ListByUser(ctx context.Context, username string, limit int) ([]*models.SearchRecord, error) {
	query := `
		SELECT id, sequence, username, query, created_at, updated_at
		FROM search_history
		WHERE username = ?
		ORDER BY sequence DESC
	`
	args := []any{username}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var records []*models.SearchRecord
	for rows.Next() {
		var (
			id, owner, q         string
			sequence             int
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &sequence, &owner, &q, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}

		rec := models.NewSearchRecord(sequence, owner, q)
		rec.SetID(id)
		rec.SetCreatedAt(createdAt)
		rec.SetUpdatedAt(updatedAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
