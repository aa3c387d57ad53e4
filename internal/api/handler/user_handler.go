package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raingor/anime-site-api/internal/api/metrics"
	"github.com/raingor/anime-site-api/internal/core/domain"
	"github.com/raingor/anime-site-api/internal/core/ports"
)

// UserViewCache is the boundary-level cache consulted on single-user reads.
// A nil cache disables caching entirely.
type UserViewCache interface {
	Get(ctx context.Context, id int64) (*domain.UserView, error)
	Set(ctx context.Context, view domain.UserView) error
	Invalidate(ctx context.Context, id int64) error
}

// UserHandler handles HTTP requests for account administration and profile reads.
type UserHandler struct {
	accounts ports.AccountService
	cache    UserViewCache
}

func NewUserHandler(accounts ports.AccountService, cache UserViewCache) *UserHandler {
	return &UserHandler{accounts: accounts, cache: cache}
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type countResponse struct {
	Count int `json:"count"`
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserView
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	env, err := h.accounts.ListUserViews(c.Request().Context())
	if err != nil {
		return err
	}
	return writeEnvelope(c, env)
}

// Count handles GET /api/users/count.
//
// @Summary      Count users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Router       /api/users/count [get]
func (h *UserHandler) Count(c echo.Context) error {
	count, err := h.accounts.CountUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User identifier"
// @Success      200  {object}  domain.UserView
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if h.cache != nil {
		if view, err := h.cache.Get(ctx, id); err == nil && view != nil {
			metrics.ViewCacheTotal.WithLabelValues("hit").Inc()
			return c.JSON(http.StatusOK, view)
		}
		metrics.ViewCacheTotal.WithLabelValues("miss").Inc()
	}

	env, err := h.accounts.GetUserView(ctx, id)
	if err != nil {
		return err
	}

	if h.cache != nil {
		if view, ok := env.Body.(domain.UserView); ok {
			_ = h.cache.Set(ctx, view)
		}
	}
	return writeEnvelope(c, env)
}

// Update handles PUT /api/users/:id — a full-record overwrite, not a patch.
//
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "User identifier"
// @Param        body  body  updateUserRequest  true  "Replacement account data"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	env, err := h.accounts.UpdateUser(ctx, id, ports.RegistrationInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.AccountsUpdatedTotal.Inc()
	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, id)
	}
	return writeEnvelope(c, env)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User identifier"
// @Success      200
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	env, err := h.accounts.DeleteUser(ctx, id)
	if err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, id)
	}
	return writeEnvelope(c, env)
}

// Profile handles GET /api/profile — the authenticated caller's own view.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserView
// @Failure      404  {object}  map[string]string
// @Router       /api/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	username, err := principal(c)
	if err != nil {
		return err
	}

	env, err := h.accounts.GetOwnProfile(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return writeEnvelope(c, env)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

// writeEnvelope serializes a core envelope: a bodyless envelope becomes a
// bare status, anything else is rendered as JSON.
func writeEnvelope(c echo.Context, env ports.Envelope) error {
	if env.Body == nil {
		return c.NoContent(env.Status)
	}
	return c.JSON(env.Status, env.Body)
}
