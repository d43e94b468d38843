package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/config"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/pkg/hash"
	"github.com/TadasTam/LiftSearch-Backend/pkg/tokens"
)

// newTestRepo opens a private in-memory database per test. cache=shared keeps
// every pooled connection on the same database, and foreign keys are switched
// on so the schema constraints behave like the real store.
func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repo.New(db)
}

func newTestTokens() *tokens.Service {
	return tokens.NewService([]byte("test-jwt-secret"), "liftsearch", "liftsearch-api")
}

func newTestAuthService(r *repo.GormRepo) *AuthService {
	return &AuthService{Repo: r, Tokens: newTestTokens()}
}

// seedTraveler creates a user the way Register does: Traveler role plus an
// empty traveler profile.
func seedTraveler(t *testing.T, r *repo.GormRepo, username, password string) (*models.User, *models.Traveler) {
	t.Helper()
	ctx := context.Background()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: pwHash}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &user))
	require.NoError(t, r.AddRole(ctx, user.ID, authz.RoleTraveler))

	traveler := models.Traveler{RegisteredDate: time.Now().UTC(), UserID: user.ID}
	require.NoError(t, r.CreateTraveler(ctx, &traveler))
	traveler.User = user
	return &user, &traveler
}

// seedDriver promotes an existing user to driver.
func seedDriver(t *testing.T, r *repo.GormRepo, user *models.User) *models.Driver {
	t.Helper()
	ctx := context.Background()

	driver := models.Driver{RegisteredDate: time.Now().UTC(), UserID: user.ID}
	require.NoError(t, r.CreateDriver(ctx, &driver))
	require.NoError(t, r.AddRole(ctx, user.ID, authz.RoleDriver))
	driver.User = *user
	return &driver
}

func seedAdminUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	ctx := context.Background()

	pwHash, err := hash.HashPassword("admin-password")
	require.NoError(t, err)

	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: pwHash}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &user))
	require.NoError(t, r.AddRole(ctx, user.ID, authz.RoleAdmin))
	return &user
}

func seedTrip(t *testing.T, r *repo.GormRepo, driverID uint, seats int) *models.Trip {
	t.Helper()

	trip := models.Trip{
		TripDate:     time.Now().UTC().Add(48 * time.Hour),
		LastEditTime: time.Now().UTC(),
		SeatsCount:   seats,
		Price:        12.5,
		StartCity:    "Vilnius",
		EndCity:      "Kaunas",
		Status:       models.TripStatusActive,
		DriverID:     driverID,
	}
	require.NoError(t, r.CreateTrip(context.Background(), &trip))
	return &trip
}

func travelerIdentity(user *models.User, traveler *models.Traveler) authz.Identity {
	return authz.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Roles:      authz.NewRoleSet(authz.RoleTraveler),
		DriverID:   -1,
		TravelerID: int(traveler.ID),
	}
}

func driverIdentity(user *models.User, driver *models.Driver, traveler *models.Traveler) authz.Identity {
	return authz.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Roles:      authz.NewRoleSet(authz.RoleTraveler, authz.RoleDriver),
		DriverID:   int(driver.ID),
		TravelerID: int(traveler.ID),
	}
}

func adminIdentity(user *models.User) authz.Identity {
	return authz.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Roles:      authz.NewRoleSet(authz.RoleAdmin),
		DriverID:   -1,
		TravelerID: -1,
	}
}
