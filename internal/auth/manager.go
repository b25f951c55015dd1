package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/mymusic/internal/models"
)

// CredentialStore persists credential records.
//
// FindUserByUsername returns an error matching [models.ErrNotFound] when no record exists, and
// InsertUser returns one matching [models.ErrConflict] when the username is already stored.
type CredentialStore interface {
	InsertUser(ctx context.Context, credential *models.Credential) error
	FindUserByUsername(ctx context.Context, username string) (*models.Credential, error)
}

// Manager signs users up and logs them in against a [CredentialStore].
type Manager struct {
	store  CredentialStore
	hasher Hasher
}

// NewManager creates a Manager. A nil hasher uses bcrypt at the default cost.
func NewManager(store CredentialStore, hasher Hasher) *Manager {
	if hasher == nil {
		hasher = defaultHasher
	}
	return &Manager{store: store, hasher: hasher}
}

// SignUp validates password, hashes it and stores exactly one credential record for username.
func (m *Manager) SignUp(ctx context.Context, username, password string) error {
	if err := ValidatePassword(username, password); err != nil {
		return err
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := m.store.InsertUser(ctx, models.NewCredential(0, username, hash)); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

// Login looks up username once and verifies password against the stored hash.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	credential, err := m.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Session{}, ErrUnknownUser
		}
		return Session{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !m.hasher.Verify(credential.PasswordHash(), password) {
		return Session{}, ErrInvalidCredentials
	}

	return NewSession(credential.Username()), nil
}
