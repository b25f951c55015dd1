package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordKey keys the HMAC applied to every password before bcrypt. Changing it invalidates
// all stored hashes.
var passwordKey = []byte("mymusic/password/v1")

// Hasher hashes passwords and verifies candidates against stored hashes.
type Hasher interface {
	Hash(password string) ([]byte, error)
	Verify(hash []byte, candidate string) bool
}

// BcryptHasher implements [Hasher] with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or [bcrypt.DefaultCost] when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the bcrypt work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt hash of password. The empty password is valid input.
func (h *BcryptHasher) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether candidate matches hash. Malformed hashes never match.
func (h *BcryptHasher) Verify(hash []byte, candidate string) bool {
	return bcrypt.CompareHashAndPassword(hash, bcryptInput(candidate)) == nil
}

// bcryptInput maps every password to base64(HMAC-SHA256(passwordKey, password)).
//
// The 44-byte result fits bcrypt's 72-byte input limit, so no length is rejected and every byte
// of the password counts. All inputs take the same path, so a digest string never verifies
// against the hash of the password it was derived from.
func bcryptInput(password string) []byte {
	mac := hmac.New(sha256.New, passwordKey)
	mac.Write([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

var defaultHasher = NewBcryptHasher(bcrypt.DefaultCost)

// HashPassword hashes password with the default bcrypt cost.
func HashPassword(password string) ([]byte, error) {
	return defaultHasher.Hash(password)
}

// VerifyPassword reports whether candidate matches hash.
func VerifyPassword(hash []byte, candidate string) bool {
	return defaultHasher.Verify(hash, candidate)
}
