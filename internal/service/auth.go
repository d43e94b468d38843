package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/events"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/pkg/hash"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
	"github.com/TadasTam/LiftSearch-Backend/pkg/tokens"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *tokens.Service
	Producer *events.Producer
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates the user with the Traveler role and an empty traveler
// profile. No tokens are issued here; the client logs in separately.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 422, "reason", "username already taken")
			return nil, ruleError("Username already taken")
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Repo.AddRole(ctx, user.ID, authz.RoleTraveler); err != nil && !errors.Is(err, repo.ErrRoleAlreadyAssigned) {
		return nil, err
	}
	traveler := models.Traveler{
		CancelledCount: 0,
		RegisteredDate: time.Now().UTC(),
		UserID:         user.ID,
	}
	if err := s.Repo.CreateTraveler(ctx, &traveler); err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, events.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("publish_failed", "error", err)
	}

	l.Info("register_successful", "user_id", user.ID)
	return &user, nil
}

// Login verifies credentials, clears any pending forced re-login and issues
// a fresh token pair. A wrong password is rejected outright.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 422, "reason", "unknown username")
			return nil, ruleError("Username or password was incorrect")
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 422, "reason", "password mismatch")
		return nil, ruleError("Username or password was incorrect")
	}

	if err := s.Repo.SetForceRelogin(ctx, user.ID, false); err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, events.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("publish_failed", "error", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return pair, nil
}

// Refresh redeems a refresh token for a new pair. Expiry is distinguishable
// from every other failure so the handler can answer 401 rather than 422;
// the force_relogin flag is re-checked at redemption time.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			l.Warn("refresh_failed", "status", 401, "reason", "refresh token expired")
			return nil, unauthorizedError("refresh token expired")
		}
		l.Warn("refresh_failed", "status", 422, "reason", "invalid refresh token")
		return nil, ruleError("Invalid token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ruleError("Invalid token")
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 422, "reason", "subject does not exist")
			return nil, ruleError("Invalid token")
		}
		return nil, err
	}
	if user.ForceRelogin {
		l.Warn("refresh_failed", "status", 422, "reason", "relogin forced")
		return nil, ruleError("Invalid token")
	}

	return s.issueTokens(ctx, user)
}

// Logout flags the authenticated user for forced re-login, invalidating all
// outstanding refresh tokens at once. The access token stays valid for the
// remainder of its own window.
func (s *AuthService) Logout(ctx context.Context, id authz.Identity) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", id.UserID)

	if _, err := s.Repo.GetUserByID(ctx, id.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ruleError("Invalid token")
		}
		return err
	}
	if err := s.Repo.SetForceRelogin(ctx, id.UserID, true); err != nil {
		return err
	}

	if err := s.Producer.Publish(ctx, events.TopicUserEvents, id.Username, map[string]any{
		"type":     "user_logged_out",
		"user_id":  id.UserID,
		"username": id.Username,
	}); err != nil {
		l.Warn("publish_failed", "error", err)
	}

	l.Info("logout_successful")
	return nil
}

// issueTokens resolves the user's current roles and profile ids so the access
// token always reflects the profile rows that exist right now.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	roles, err := s.Repo.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	driverID, travelerID := -1, -1
	if roles.Has(authz.RoleDriver) {
		driver, err := s.Repo.GetDriverByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if driver != nil {
			driverID = int(driver.ID)
		}
	}
	if roles.Has(authz.RoleTraveler) {
		traveler, err := s.Repo.GetTravelerByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if traveler != nil {
			travelerID = int(traveler.ID)
		}
	}

	access, err := s.Tokens.CreateAccessToken(user.Username, user.ID, roles.Strings(), driverID, travelerID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
