package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
)

// requireActiveUser re-checks the token subject against the store: the user
// must still exist and must not be flagged for forced re-login. Stateless
// tokens make this flag the only revocation mechanism, so every sensitive
// operation runs this after its policy check.
func requireActiveUser(ctx context.Context, r *repo.GormRepo, id authz.Identity) error {
	user, err := r.GetUserByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ruleError("Invalid token")
		}
		return err
	}
	if user.ForceRelogin {
		return unauthorizedError("relogin required")
	}
	return nil
}
