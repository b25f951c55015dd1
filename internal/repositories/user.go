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

// UserRepository stores [models.Credential] records and implements auth.CredentialStore.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUser stores a new credential with a generated ID and sequence.
//
// A username that already exists yields an error wrapping [models.ErrConflict].
func (r *UserRepository) InsertUser(ctx context.Context, credential *models.Credential) error {
	if err := credential.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()

	err := insertSequenced(ctx, r.db, "users", func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO users (id, sequence, username, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			id, sequence, credential.Username(), credential.PasswordHash(), credential.CreatedAt(), credential.UpdatedAt())
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("username %q: %w", credential.Username(), models.ErrConflict)
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		credential.SetSequence(sequence)
		return nil
	})
	if err != nil {
		return err
	}

	credential.SetID(id)
	return nil
}

// FindUserByUsername retrieves the credential whose username matches exactly (case-sensitive).
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.Credential, error) {
	query := `
		SELECT id, sequence, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = ?
	`

	var (
		id        string
		sequence  int
		name      string
		hash      []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRowContext(ctx, query, username).Scan(&id, &sequence, &name, &hash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	credential := models.NewCredential(sequence, name, hash)
	credential.SetID(id)
	credential.SetCreatedAt(createdAt)
	credential.SetUpdatedAt(updatedAt)

	return credential, nil
}

// Count returns the number of stored credentials.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
