package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// AdminService is the interface that wraps methods for admin user management
type AdminService interface {
	// Method ListUsers returns the public projection of every user, newest created first.
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	// Method GetUser returns the public projection of a single user.
	//
	// If no user with such id exists, models.ErrUserNotFound is returned.
	GetUser(ctx context.Context, id string) (*models.PublicUser, error)
	// Method CreateUser creates an account with a caller-specified role from the {admin, user} allow-list.
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.PublicUser, error)
	// Method UpdateUser applies a partial update of {username, password, role}.
	UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.PublicUser, error)
	// Method DeleteUser removes an account; absent ids succeed.
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler handles admin user-management HTTP requests
type UserHandler struct {
	BaseHandler
	adminService AdminService
}

// NewUserHandler creates a new user handler
func NewUserHandler(adminService AdminService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all user-management routes.
// The router group is expected to already carry the auth middleware and the
// admin role gate.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Post("/", h.CreateUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

// ListUsers handles GET /users
// @Summary List all users
// @Description Returns every user in the public projection, newest created first.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.PublicUser "List of users"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.PublicUser "User"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.adminService.GetUser(r.Context(), id)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// CreateUser handles POST /users
// @Summary Create a user
// @Description Admin-only create. Role may be "admin" or "user"; empty defaults to "user".
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateUserRequest true "Create user request"
// @Success 201 {object} models.PublicUser "Created user"
// @Failure 400 {object} map[string]string "Invalid body, role outside allow-list, or username already exists"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.adminService.CreateUser(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create user", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/{id}
// @Summary Update a user
// @Description Partial update of username, password and role. Omitted fields stay unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Update user request"
// @Success 200 {object} models.PublicUser "Updated user"
// @Failure 400 {object} map[string]string "Invalid body or username already exists"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(r.Context(), id, &req)
	if err != nil {
		h.Logger.Error("failed to update user", zap.Error(err), zap.String("id", id))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}
// @Summary Delete a user
// @Description Removes the user. Succeeds even when the id was already absent.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.adminService.DeleteUser(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete user", zap.Error(err), zap.String("id", id))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
