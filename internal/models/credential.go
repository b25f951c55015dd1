package models

// Credential is the persisted {username, passwordHash} pair.
//
// Created on signup and never mutated afterwards.
type Credential struct {
	record
	username     string
	passwordHash []byte
}

// NewCredential creates a credential for username with an already-computed hash.
func NewCredential(sequence int, username string, passwordHash []byte) *Credential {
	return &Credential{record: newRecord(sequence), username: username, passwordHash: passwordHash}
}

func (c *Credential) Username() string     { return c.username }
func (c *Credential) PasswordHash() []byte { return c.passwordHash }

// Validate requires a hash. The username is stored exactly as given, empty included.
func (c *Credential) Validate() error {
	if len(c.passwordHash) == 0 {
		return ErrMissingHash
	}
	return nil
}
