package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smarthomeinventory/backend/internal/models"
)

// seedAccount is a well-known account created at startup when absent
type seedAccount struct {
	username string
	password string
	role     models.Role
}

var defaultAccounts = []seedAccount{
	{username: "admin", password: "admin123", role: models.RoleAdmin},
	{username: "user", password: "user123", role: models.RoleUser},
}

// SeedDefaultAccounts inserts the default admin and user accounts if they do
// not exist yet. It runs once before the server accepts connections and is a
// no-op on every restart after the first. When several instances start
// against the same store at once, the loser of the insert race sees the
// UNIQUE index violation and treats the account as already present.
func SeedDefaultAccounts(ctx context.Context, userRepo UserRepository, logger *zap.Logger) error {
	for _, account := range defaultAccounts {
		exists, err := userRepo.ExistsByUsername(ctx, account.username, "")
		if err != nil {
			return fmt.Errorf("failed to check seed account %q: %w", account.username, err)
		}
		if exists {
			continue
		}

		passwordHash, err := hashPassword(account.password)
		if err != nil {
			return err
		}

		user := &models.User{
			Username:     account.username,
			PasswordHash: passwordHash,
			Role:         account.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, models.ErrUsernameTaken) {
				// Another instance seeded it first
				continue
			}
			return fmt.Errorf("failed to seed account %q: %w", account.username, err)
		}

		logger.Info("default account created",
			zap.String("username", account.username),
			zap.String("role", string(account.role)),
		)
	}

	return nil
}
