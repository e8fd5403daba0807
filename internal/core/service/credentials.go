package service

import (
	"errors"
	"fmt"

	"github.com/martijn/boatapi/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

var ErrUnknownIdentity = errors.New("unknown identity")

// CredentialVerifier checks login attempts against the single configured
// identity.
type CredentialVerifier struct {
	username string
	password string
}

func NewCredentialVerifier(username, password string) *CredentialVerifier {
	return &CredentialVerifier{
		username: username,
		password: password,
	}
}

// Verify reports whether username and password match the configured pair
// exactly. The comparison is on the plaintext password.
func (v *CredentialVerifier) Verify(username, password string) bool {
	return username == v.username && password == v.password
}

// LoadIdentity returns the configured identity with a bcrypt hash of its
// password. Login never consults it; it only backs the identity command.
func (v *CredentialVerifier) LoadIdentity(username string) (*domain.Identity, error) {
	if username != v.username {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentity, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(v.password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &domain.Identity{
		Username:     v.username,
		PasswordHash: string(hash),
	}, nil
}
