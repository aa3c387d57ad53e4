package ports

import (
	"context"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

// RegistrationInput is the transient registration/update payload. The
// password is plaintext here and only here; it is hashed before anything is
// persisted.
type RegistrationInput struct {
	Username string
	Email    string
	Password string
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationResult is the externally computed validation outcome handed to
// CreateUser. Entries keep the order the validator reported them.
type ValidationResult struct {
	Errors []FieldError
}

// HasErrors reports whether the outcome carries at least one field error.
func (v ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// Envelope is the (status code, optional body) pair every account operation
// resolves to on success. Error paths return a typed error instead; the HTTP
// boundary maps those to status codes.
type Envelope struct {
	Status int
	Body   any
}

// AccountService covers the full account lifecycle plus the transport-safe
// read operations consumed by the HTTP boundary.
type AccountService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	CreateUser(ctx context.Context, input RegistrationInput, validation ValidationResult) (Envelope, error)
	UpdateUser(ctx context.Context, id int64, input RegistrationInput) (Envelope, error)
	DeleteUser(ctx context.Context, id int64) (Envelope, error)

	GetUserView(ctx context.Context, id int64) (Envelope, error)
	ListUserViews(ctx context.Context) (Envelope, error)
	GetOwnProfile(ctx context.Context, currentUsername string) (Envelope, error)
}
