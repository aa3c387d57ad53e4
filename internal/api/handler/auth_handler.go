package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raingor/anime-site-api/internal/api/metrics"
	"github.com/raingor/anime-site-api/internal/core/domain"
	"github.com/raingor/anime-site-api/internal/core/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	accounts  ports.AccountService
	auth      ports.AuthService
	validator *RequestValidator
}

func NewAuthHandler(accounts ports.AccountService, auth ports.AuthService, validator *RequestValidator) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth, validator: validator}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.UserView `json:"user"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// The validation outcome is computed here at the boundary and handed to
	// the service; the service owns the error-message concatenation.
	validation := h.validator.FieldErrors(req)

	env, err := h.accounts.CreateUser(c.Request().Context(), ports.RegistrationInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}, validation)
	if err != nil {
		metrics.RegistrationsRejectedTotal.Inc()
		return err
	}

	metrics.AccountsCreatedTotal.Inc()
	return writeEnvelope(c, env)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user.View()})
}
