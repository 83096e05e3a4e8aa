package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pandeptwidyaop/launchpad/internal/config"
)

var (
	// ErrInvalidToken indicates the presented bridge token does not match.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoToken indicates the host has no token configured and anonymous access is off.
	ErrNoToken = errors.New("no token configured")
)

// AuthService verifies the shared bridge token against its bcrypt hash.
type AuthService struct {
	tokenHash      []byte
	allowAnonymous bool
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenHash:      []byte(cfg.TokenHash),
		allowAnonymous: cfg.AllowAnonymous,
	}
}

// Configured reports whether requests can be authorized at all.
func (s *AuthService) Configured() bool {
	return s.allowAnonymous || len(s.tokenHash) > 0
}

// Verify checks a bearer token.
func (s *AuthService) Verify(token string) error {
	if s.allowAnonymous {
		return nil
	}
	if len(s.tokenHash) == 0 {
		return ErrNoToken
	}
	if token == "" {
		return ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword(s.tokenHash, []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// HashToken returns the bcrypt hash to put in auth.token_hash.
func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(bytes), err
}

// GenerateToken returns a random URL-safe token.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
