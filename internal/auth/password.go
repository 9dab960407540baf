package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Superuser checks credentials against a single configured account.
type Superuser struct {
	username     string
	passwordHash []byte

	// dummyHash is compared against when the username is wrong so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewSuperuser creates an authenticator for username with a bcrypt hash.
func NewSuperuser(username, passwordHash string) (*Superuser, error) {
	cost, err := bcrypt.Cost([]byte(passwordHash))
	if err != nil {
		return nil, fmt.Errorf("parsing superuser password hash: %w", err)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(username), cost)
	if err != nil {
		return nil, fmt.Errorf("hashing placeholder password: %w", err)
	}

	return &Superuser{username: username, passwordHash: []byte(passwordHash), dummyHash: dummy}, nil
}

// Authenticate returns ErrInvalidCredentials unless username and password
// match the superuser.
func (s *Superuser) Authenticate(username, password string) error {
	hash := s.passwordHash
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	if !userOK {
		hash = s.dummyHash
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !userOK {
		return ErrInvalidCredentials
	}

	return nil
}

// HashPassword returns a bcrypt hash suitable for auth.superuser.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}
