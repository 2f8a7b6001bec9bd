package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/NandhiniKarvendhan/login-backend/api/http/presenter"
	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
)

const (
	msgRequired        = "Username and password are required!"
	msgInvalidJSON     = "Invalid JSON payload."
	msgUserExists      = "User already exists!"
	msgRegistered      = "User registered successfully!"
	msgUserNotFound    = "User not found!"
	msgBadCredentials  = "Invalid credentials!"
	msgLoggedIn        = "Login successful!"
	msgInvalidIDToken  = "Invalid Google ID token."
	msgGoogleSignedIn  = "Google Sign-In successful!"
	msgInternal        = "Internal server error."
	msgUnauthenticated = "Unauthenticated."
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *slog.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *slog.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type credentialsRequest struct {
	Username string `json:"username" example:"a@b.com"`
	Password string `json:"password" example:"pw123"`
}

type googleSignInRequest struct {
	IDToken string `json:"idToken"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type profileResponse struct {
	Success bool    `json:"success"`
	User    userDTO `json:"user"`
}

// parseJSON decodes a JSON body into out. An empty body or a non-JSON
// content type leaves out zero-valued, so such requests fail field checks.
func parseJSON(c *fiber.Ctx, out any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 || !c.Is("json") {
		return nil
	}
	return c.BodyParser(out)
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := parseJSON(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	_, err := h.useCase.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, msgRequired)
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusBadRequest, msgUserExists)
		default:
			h.log.ErrorContext(c.UserContext(), "registration failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, msgInternal)
		}
	}
	return presenter.Success(c, http.StatusCreated, msgRegistered, "")
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := parseJSON(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	result, err := h.useCase.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, msgRequired)
		case errors.Is(err, auth.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, msgBadCredentials)
		default:
			h.log.ErrorContext(c.UserContext(), "login failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, msgInternal)
		}
	}
	return presenter.Success(c, http.StatusOK, msgLoggedIn, result.Token)
}

// GoogleSignIn exchanges a Firebase ID token for an API token, creating the
// account on first sign-in.
// @Summary Google Sign-In
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body googleSignInRequest true "Firebase ID token"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /google-signin [post]
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req googleSignInRequest
	if err := parseJSON(c, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidIDToken)
	}

	result, err := h.useCase.GoogleSignIn(c.UserContext(), req.IDToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.log.WarnContext(c.UserContext(), "google sign-in rejected", "error", err)
			return presenter.Error(c, http.StatusBadRequest, msgInvalidIDToken)
		}
		h.log.ErrorContext(c.UserContext(), "google sign-in failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, msgInternal)
	}
	return presenter.Success(c, http.StatusOK, msgGoogleSignedIn, result.Token)
}

// Me returns the account behind the bearer token.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	if userID == "" {
		return presenter.Error(c, http.StatusUnauthorized, msgUnauthenticated)
	}
	user, err := h.useCase.Profile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, msgUserNotFound)
		}
		h.log.ErrorContext(c.UserContext(), "profile lookup failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, msgInternal)
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{
		Success: true,
		User:    userDTO{ID: user.ID, Username: user.Username, Name: user.Name},
	})
}
