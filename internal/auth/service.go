package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

const saltBytes = 16

// Service wraps credential registration and authentication. Password
// length policy deliberately lives at the call sites, not here.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a credential with a fresh random salt. The stored digest
// is SHA-256 over salt concatenated with the password, hex encoded — the
// layout the existing app_users rows already use.
func (s *Service) Register(ctx context.Context, username string, role Role, password string) (Credential, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return Credential{}, err
	}
	salt, err := newSalt()
	if err != nil {
		return Credential{}, err
	}
	return s.repo.Insert(ctx, username, role, hashPassword(password, salt), salt)
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Credential, error) {
	stored, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Credential{}, shared.ErrInvalidCredentials
		}
		return Credential{}, err
	}
	supplied := hashPassword(password, stored.Salt)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(stored.Digest)) != 1 {
		return Credential{}, shared.ErrInvalidCredentials
	}
	return stored.Credential, nil
}

// List returns all credentials without secret material.
func (s *Service) List(ctx context.Context) ([]Credential, error) {
	return s.repo.List(ctx)
}

func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
