package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// validate checks request DTO constraints (required fields, role allow-list)
var validate = validator.New()

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// DecodeAndValidate decodes the JSON body into dst and validates it. On
// failure it writes the 400 response itself and returns false.
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request: "+validationMessage(err))
		return false
	}

	return true
}

// RespondDomainError translates a service error into an HTTP response.
// Unknown errors become a generic 500 so persistence internals never leak.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrUsernameTaken):
		h.RespondError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, models.ErrUserNotFound):
		h.RespondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrInvalidRole):
		h.RespondError(w, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, models.ErrInvalidUsername):
		h.RespondError(w, http.StatusBadRequest, "Invalid username")
	default:
		h.Logger.Error("unexpected error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		if field.Tag() == "required" {
			return field.Field() + " is required"
		}
		return field.Field() + " is invalid"
	}
	return "validation failed"
}
