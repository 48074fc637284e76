package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configured cost factor
type PasswordHasher struct {
	cost int

	// dummyHash is burned when a login names an unknown account, so the
	// miss path costs as much as a real comparison.
	dummyHash string
}

// NewPasswordHasher creates a hasher. Costs outside bcrypt's valid range fall
// back to the library default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("credential-padding"), cost)
	if err != nil {
		panic("failed to generate padding hash: " + err.Error())
	}
	return &PasswordHasher{cost: cost, dummyHash: string(dummy)}
}

// Hash returns a salted bcrypt hash of the plaintext
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed or
// corrupt hashes verify as false rather than erroring out.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
