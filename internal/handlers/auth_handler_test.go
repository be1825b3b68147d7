package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// mockAccountService is a mock implementation of AccountService
type mockAccountService struct {
	token string
	user  *models.User
	err   error
}

func (m *mockAccountService) Signup(ctx context.Context, req *models.SignupRequest) (string, *models.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAccountService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func setupAuthRouter(svc AccountService) chi.Router {
	h := NewAuthHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	alice := &models.User{ID: "id-alice", Username: "alice", PasswordHash: "hash", Role: models.RoleUser}

	tests := []struct {
		name           string
		body           any
		svc            *mockAccountService
		expectedStatus int
	}{
		{
			name:           "success",
			body:           map[string]string{"username": "alice", "password": "secret1"},
			svc:            &mockAccountService{token: "tok123", user: alice},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing password",
			body:           map[string]string{"username": "alice"},
			svc:            &mockAccountService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing username",
			body:           map[string]string{"password": "secret1"},
			svc:            &mockAccountService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid credentials",
			body:           map[string]string{"username": "alice", "password": "wrong"},
			svc:            &mockAccountService{err: models.ErrInvalidCredentials},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.svc)
			rec := postJSON(t, router, "/api/auth/login", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp models.AuthResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "tok123", resp.Token)
				assert.Equal(t, "alice", resp.User.Username)
			}

			// The hash never leaks, whatever the outcome
			assert.NotContains(t, strings.ToLower(rec.Body.String()), "passwordhash")
			assert.NotContains(t, rec.Body.String(), "hash")
		})
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	router := setupAuthRouter(&mockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		svc            *mockAccountService
		expectedStatus int
	}{
		{
			name: "success returns created with token",
			body: map[string]string{"username": "alice", "password": "secret1"},
			svc: &mockAccountService{
				token: "tok123",
				user:  &models.User{ID: "id-alice", Username: "alice", PasswordHash: "hash", Role: models.RoleUser},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "username taken",
			body:           map[string]string{"username": "alice", "password": "secret1"},
			svc:            &mockAccountService{err: models.ErrUsernameTaken},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "whitespace-only username",
			body:           map[string]string{"username": "   ", "password": "secret1"},
			svc:            &mockAccountService{err: models.ErrInvalidUsername},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields",
			body:           map[string]string{},
			svc:            &mockAccountService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.svc)
			rec := postJSON(t, router, "/api/auth/signup", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.AuthResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, models.RoleUser, resp.User.Role)
			}

			assert.NotContains(t, strings.ToLower(rec.Body.String()), "passwordhash")
		})
	}
}

// Role in the signup body is ignored by decoding into SignupRequest, which
// has no role field at all.
func TestAuthHandler_Signup_ClientRoleIgnored(t *testing.T) {
	svc := &mockAccountService{
		token: "tok123",
		user:  &models.User{ID: "id-m", Username: "mallory", Role: models.RoleUser},
	}
	router := setupAuthRouter(svc)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"username": "mallory",
		"password": "secret1",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleUser, resp.User.Role)
}
