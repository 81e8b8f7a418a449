package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/shared"
)

type memoryRepo struct {
	byUsername map[string]StoredCredential
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byUsername: make(map[string]StoredCredential)}
}

func (r *memoryRepo) Insert(ctx context.Context, username string, role Role, digest, salt string) (Credential, error) {
	if _, ok := r.byUsername[username]; ok {
		return Credential{}, shared.ErrUsernameTaken
	}
	r.nextID++
	cred := Credential{ID: r.nextID, Username: username, Role: role, CreatedAt: time.Now()}
	r.byUsername[username] = StoredCredential{Credential: cred, Digest: digest, Salt: salt}
	return cred, nil
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (StoredCredential, error) {
	stored, ok := r.byUsername[username]
	if !ok {
		return StoredCredential{}, shared.ErrNotFound
	}
	return stored, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (Credential, error) {
	for _, stored := range r.byUsername {
		if stored.ID == id {
			return stored.Credential, nil
		}
	}
	return Credential{}, shared.ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context) ([]Credential, error) {
	creds := make([]Credential, 0, len(r.byUsername))
	for _, stored := range r.byUsername {
		creds = append(creds, stored.Credential)
	}
	return creds, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", RoleManager, "s3cret")
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.Equal(t, RoleManager, created.Role)

	got, err := svc.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, RoleManager, got.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", RoleManager, "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", RoleManager, "first")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", RoleAdmin, "second")
	require.ErrorIs(t, err, shared.ErrUsernameTaken)

	// The original credential still authenticates.
	got, err := svc.Authenticate(ctx, "alice", "first")
	require.NoError(t, err)
	require.Equal(t, RoleManager, got.Role)
}

func TestRegisterUnknownRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), "bob", Role("superuser"), "s3cret")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestRegisterSaltsAreUnique(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", RoleManager, "same-password")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", RoleManager, "same-password")
	require.NoError(t, err)

	a := repo.byUsername["alice"]
	b := repo.byUsername["bob"]
	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.Digest, b.Digest)
	require.Len(t, a.Salt, 2*saltBytes)
}

func TestDigestLayoutMatchesExistingRows(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	// Seed a row shaped exactly like the legacy table: hex salt,
	// hex(SHA-256(salt || password)).
	salt := "00112233445566778899aabbccddeeff"
	sum := sha256.Sum256([]byte(salt + "legacy-pass"))
	stored := StoredCredential{
		Credential: Credential{ID: 42, Username: "legacy", Role: RoleCashier},
		Digest:     hex.EncodeToString(sum[:]),
		Salt:       salt,
	}
	repo.byUsername["legacy"] = stored
	repo.nextID = 42

	got, err := svc.Authenticate(context.Background(), "legacy", "legacy-pass")
	require.NoError(t, err)
	require.Equal(t, int64(42), got.ID)
}
