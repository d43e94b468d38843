package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/pkg/hash"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

// SeedAdmin ensures the configured administrator account exists and carries
// the Admin role. Safe to run on every start.
func SeedAdmin(ctx context.Context, r *repo.GormRepo, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", "seed")

	if username == "" || password == "" {
		l.Info("admin_seed_skipped", "reason", "no admin credentials configured")
		return nil
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := r.CreateUserIfNotExists(ctx, user); err != nil {
		if !errors.Is(err, repo.ErrUserAlreadyExist) {
			return fmt.Errorf("create admin user: %w", err)
		}
		existing, err := r.GetUserByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("load admin user: %w", err)
		}
		user = existing
	}

	if err := r.AddRole(ctx, user.ID, authz.RoleAdmin); err != nil && !errors.Is(err, repo.ErrRoleAlreadyAssigned) {
		return fmt.Errorf("assign admin role: %w", err)
	}

	l.Info("admin_seeded", "user_id", user.ID)
	return nil
}
