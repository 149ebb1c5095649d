package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher converts a password to its stored form and checks candidates against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// PlainHasher stores passwords verbatim. It keeps files written by earlier
// builds readable; prefer BcryptHasher for new installations.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewHasher returns the hasher for a configured scheme name.
func NewHasher(scheme string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
