package ports

import (
	"context"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
//
// FindByID and FindByUsername return (nil, nil) when no record matches; the
// service layer decides whether absence is an error. Save is an insert when
// the user has no identifier yet, otherwise a full-record overwrite keyed by
// it. DeleteByID on an unknown identifier is a silent no-op.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RoleProvider resolves the default role assigned to every written account.
type RoleProvider interface {
	DefaultRole(ctx context.Context) (domain.Role, error)
}

// PasswordHasher is the injected one-way hashing capability.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) error
}
