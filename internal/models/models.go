// package models defines the data model for the music discovery service
package models

import (
	"errors"
	"time"
)

var (
	ErrMissingUsername = errors.New("username is required")
	ErrMissingHash     = errors.New("password hash is required")
	ErrMissingTrack    = errors.New("track id is required")
	ErrMissingName     = errors.New("playlist name is required")
	ErrMissingQuery    = errors.New("query is required")
)

// Model defines the base interface for all persistent models in the music discovery service.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Owned is implemented by records that belong to exactly one user.
type Owned interface {
	Model
	Username() string
}

// record holds the bookkeeping fields shared by every persisted entity.
type record struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
}

func newRecord(sequence int) record {
	now := time.Now().UTC()
	return record{sequence: sequence, createdAt: now, updatedAt: now}
}

func (r *record) ID() string               { return r.id }
func (r *record) Sequence() int            { return r.sequence }
func (r *record) CreatedAt() time.Time     { return r.createdAt }
func (r *record) UpdatedAt() time.Time     { return r.updatedAt }
func (r *record) SetID(id string)          { r.id = id }
func (r *record) SetSequence(sequence int) { r.sequence = sequence }
func (r *record) SetCreatedAt(t time.Time) { r.createdAt = t }
func (r *record) SetUpdatedAt(t time.Time) { r.updatedAt = t }

// Persistence errors shared by every store implementation.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)
