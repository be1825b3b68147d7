package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// AdminService handles user management performed by admin-role callers
type AdminService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo UserRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns the public projection of every user, newest created first
func (s *AdminService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]models.PublicUser, len(users))
	for i, user := range users {
		list[i] = user.Public()
	}

	return list, nil
}

// GetUser returns the public projection of a single user
func (s *AdminService) GetUser(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// CreateUser creates an account with a caller-specified role. Unlike signup,
// an admin may create another admin; the role still has to come from the
// {admin, user} allow-list. An empty role defaults to "user".
func (s *AdminService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.PublicUser, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrUsernameTaken
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin",
		zap.String("id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	public := user.Public()
	return &public, nil
}

// UpdateUser applies a partial update of {username, password, role}. Fields
// left nil stay unchanged; a rename re-validates uniqueness excluding the
// target record itself.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username, err := normalizeUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if username != user.Username {
			exists, err := s.userRepo.ExistsByUsername(ctx, username, user.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, models.ErrUsernameTaken
			}
			user.Username = username
		}
	}

	if req.Password != nil {
		passwordHash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, models.ErrInvalidRole
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// DeleteUser removes an account. Deleting an already absent id succeeds:
// the outcome the admin asked for holds either way.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
