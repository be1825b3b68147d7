package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// AccountService is the interface that wraps methods for signup and login business logic
type AccountService interface {
	// Method Signup registers a new user-role account and issues a token.
	//
	// If the username is already registered, models.ErrUsernameTaken is returned.
	Signup(ctx context.Context, req *models.SignupRequest) (string, *models.User, error)
	// Method Login authenticates a username/password pair and issues a token.
	//
	// An unknown username and a wrong password both yield models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	accountService AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountService AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		accountService: accountService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)
	})
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with username and password. Returns a bearer token and the public user view.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Token and public user"
// @Failure 400 {object} map[string]string "Missing username or password"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := h.accountService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("login rejected", zap.String("username", req.Username))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new account
// @Description Self-service signup. The created account always has the user role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} models.AuthResponse "Token and public user"
// @Failure 400 {object} map[string]string "Missing fields or username already exists"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := h.accountService.Signup(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to sign up user", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}
