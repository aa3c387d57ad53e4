package ports

import (
	"context"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

// AuthService authenticates a principal and issues the session token the
// boundary puts on the wire.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
