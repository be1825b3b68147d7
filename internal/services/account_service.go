package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smarthomeinventory/backend/internal/auth"
	"github.com/smarthomeinventory/backend/internal/metrics"
	"github.com/smarthomeinventory/backend/internal/models"
)

// bcryptCost is the fixed hashing cost. Cost 12 keeps a single hash under
// roughly 250ms on commodity hardware while staying expensive for offline
// brute force.
const bcryptCost = 12

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// The generated id is written back into "user".
	//
	// If the username is already taken, models.ErrUsernameTaken is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by id.
	//
	// If no user with such id exists, models.ErrUserNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Method GetByUsername retrieves a user by exact username.
	//
	// If no user with such username exists, models.ErrUserNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetAll retrieves every user, newest created first, without password hashes.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method ExistsByUsername checks if a user with such username exists,
	// excluding the record with excludeID when non-empty.
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	// Method Update persists username, password hash and role of a loaded user.
	//
	// If the new username is already taken, models.ErrUsernameTaken is returned.
	Update(ctx context.Context, user *models.User) error
	// Method Delete removes a user by id. Absent ids are not an error.
	Delete(ctx context.Context, id string) error
}

// AccountService handles self-service signup and login
type AccountService struct {
	userRepo UserRepository
	tokens   *auth.TokenService
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(userRepo UserRepository, tokens *auth.TokenService, logger *zap.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup registers a new account. The role is always "user": self-service
// signup can never produce an admin, whatever the client sent.
func (s *AccountService) Signup(ctx context.Context, req *models.SignupRequest) (string, *models.User, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return "", nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username, "")
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, models.ErrUsernameTaken
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	// The UNIQUE index on username decides races between the existence
	// check above and this insert.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	metrics.TokensIssued.Inc()

	return token, user, nil
}

// Login authenticates a username/password pair. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			metrics.LoginFailures.Inc()
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginFailures.Inc()
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	metrics.TokensIssued.Inc()

	return token, user, nil
}

// normalizeUsername trims surrounding whitespace and rejects usernames that
// are empty afterwards. Every write path (signup, admin create, admin rename)
// goes through it, so a whitespace-only username can never reach the store.
func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", models.ErrInvalidUsername
	}
	return username, nil
}

// hashPassword runs the one-way salted transform over a plaintext password.
// The plaintext is never stored; bcrypt embeds the salt and cost in the hash.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
