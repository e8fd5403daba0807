package service

import (
	"context"
)

const TokenTypeBearer = "Bearer"

// LoginResult is handed back to a client after a successful login
type LoginResult struct {
	Token     string
	Type      string
	ExpiresIn int // seconds
}

type AuthService struct {
	verifier *CredentialVerifier
	tokens   *TokenService
}

func NewAuthService(verifier *CredentialVerifier, tokens *TokenService) *AuthService {
	return &AuthService{
		verifier: verifier,
		tokens:   tokens,
	}
}

// Login checks the credentials and issues a bearer token for the username.
// A failure never says which of the two credentials was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if !s.verifier.Verify(username, password) {
		return nil, NewAuthenticationError("Invalid credentials")
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}

	return &LoginResult{
		Token:     token,
		Type:      TokenTypeBearer,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}
