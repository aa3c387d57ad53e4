package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raingor/anime-site-api/internal/core/domain"
	"github.com/raingor/anime-site-api/internal/core/ports"
)

// AccountService orchestrates the account lifecycle: validation-outcome
// inspection, DTO/entity conversion, role assignment, and store delegation.
// It holds no state beyond its collaborators; every operation is request-scoped.
type AccountService struct {
	repo   ports.UserRepository
	roles  ports.RoleProvider
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, roles ports.RoleProvider, hasher ports.PasswordHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, roles: roles, hasher: hasher, logger: logger}
}

// ListUsers returns every persisted user. An empty store yields an empty slice.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// GetUser looks a user up by identifier. Absence is an error, never a zero value.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// CountUsers returns the number of persisted users, defined in terms of ListUsers.
func (s *AccountService) CountUsers(ctx context.Context) (int, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// FindByUsername probes for a user by its unique username. Absence is
// reported as (nil, nil), not an error.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// CreateUser registers a new account. When the supplied validation outcome
// carries field errors the call fails with *domain.UserNotCreatedError and
// nothing is persisted.
func (s *AccountService) CreateUser(ctx context.Context, input ports.RegistrationInput, validation ports.ValidationResult) (ports.Envelope, error) {
	if validation.HasErrors() {
		return ports.Envelope{}, &domain.UserNotCreatedError{Message: joinFieldErrors(validation.Errors)}
	}

	user, err := s.toUser(ctx, input)
	if err != nil {
		return ports.Envelope{}, err
	}

	if _, err := s.repo.Save(ctx, user); err != nil {
		return ports.Envelope{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user created")

	return ports.Envelope{Status: http.StatusCreated}, nil
}

// UpdateUser replaces the full record at id with the converted input. The
// identifier is forced to id regardless of anything the conversion implied,
// and the stored roles become exactly the default role; extra roles the user
// held before the update are lost.
func (s *AccountService) UpdateUser(ctx context.Context, id int64, input ports.RegistrationInput) (ports.Envelope, error) {
	user, err := s.toUser(ctx, input)
	if err != nil {
		return ports.Envelope{}, err
	}
	user.ID = id

	if _, err := s.repo.Save(ctx, user); err != nil {
		return ports.Envelope{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")

	return ports.Envelope{Status: http.StatusOK}, nil
}

// DeleteUser removes the record at id. Deleting an unknown identifier is a
// silent no-op (store semantics).
func (s *AccountService) DeleteUser(ctx context.Context, id int64) (ports.Envelope, error) {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return ports.Envelope{}, fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")

	return ports.Envelope{Status: http.StatusOK}, nil
}

// GetUserView returns the transport-safe projection of the user at id.
func (s *AccountService) GetUserView(ctx context.Context, id int64) (ports.Envelope, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return ports.Envelope{}, err
	}
	return ports.Envelope{Status: http.StatusOK, Body: user.View()}, nil
}

// ListUserViews returns every user projected to its view, preserving store order.
func (s *AccountService) ListUserViews(ctx context.Context) (ports.Envelope, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return ports.Envelope{}, err
	}

	views := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return ports.Envelope{Status: http.StatusOK, Body: views}, nil
}

// GetOwnProfile resolves the already-authenticated principal's own view. The
// caller identity comes in as a plain parameter; this service performs no
// authentication itself.
func (s *AccountService) GetOwnProfile(ctx context.Context, currentUsername string) (ports.Envelope, error) {
	user, err := s.repo.FindByUsername(ctx, currentUsername)
	if err != nil {
		return ports.Envelope{}, err
	}
	if user == nil {
		return ports.Envelope{}, domain.ErrUserNotFound
	}
	return ports.Envelope{Status: http.StatusOK, Body: user.View()}, nil
}

// toUser converts a registration input into a persistable user: username and
// email copied verbatim, password hashed, and exactly the default role
// attached. Every write path funnels through this conversion.
func (s *AccountService) toUser(ctx context.Context, input ports.RegistrationInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role, err := s.roles.DefaultRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve default role: %w", err)
	}

	return &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
		Roles:    []domain.Role{role},
	}, nil
}

// joinFieldErrors builds the "<field> - <message>;" concatenation in the
// order the validator reported the entries.
func joinFieldErrors(errs []ports.FieldError) string {
	var b strings.Builder
	for _, fe := range errs {
		b.WriteString(fe.Field)
		b.WriteString(" - ")
		b.WriteString(fe.Message)
		b.WriteString(";")
	}
	return b.String()
}
