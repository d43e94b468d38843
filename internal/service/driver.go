package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type DriverService struct {
	Repo *repo.GormRepo
}

// List and Get are open to any holder of a valid access token.
func (s *DriverService) List(ctx context.Context) ([]transport.DriverResponse, error) {
	drivers, err := s.Repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DriverResponse, 0, len(drivers))
	for i := range drivers {
		dto, err := makeDriverResponse(ctx, s.Repo, &drivers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *DriverService) Get(ctx context.Context, driverID uint) (*transport.DriverResponse, error) {
	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such driver not found")
		}
		return nil, err
	}
	return makeDriverResponse(ctx, s.Repo, driver)
}

func (s *DriverService) Passengers(ctx context.Context, id authz.Identity, driverID uint) ([]transport.PassengerResponse, error) {
	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such driver not found")
		}
		return nil, err
	}

	if err := authz.CanReadDriverPassengers(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	passengers, err := s.Repo.ListPassengersByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.PassengerResponse, 0, len(passengers))
	for i := range passengers {
		out = append(out, makePassengerResponse(&passengers[i], driverID))
	}
	return out, nil
}

// Create promotes a traveler to driver: an admin names the traveler, or a
// traveler who is not yet a driver promotes themself.
func (s *DriverService) Create(ctx context.Context, id authz.Identity, req transport.CreateDriverRequest) (*transport.DriverResponse, error) {
	l := logging.FromContext(ctx).With("svc", "driver.create", "user_id", id.UserID)

	var targetUserID uint
	switch {
	case id.IsAdmin() && req.TravelerID != nil:
		traveler, err := s.Repo.GetTraveler(ctx, *req.TravelerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundError("Such traveler does not exist")
			}
			return nil, err
		}
		targetUserID = traveler.UserID
	case authz.CanCreateDriverSelf(id) == nil:
		targetUserID = id.UserID
	default:
		return nil, ErrForbidden
	}

	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such user not found")
		}
		return nil, err
	}

	if _, err := s.Repo.GetDriverByUserID(ctx, user.ID); err == nil {
		return nil, ruleError("This user is already a driver")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	driver := models.Driver{
		CancelledCount: 0,
		RegisteredDate: time.Now().UTC(),
		Bio:            req.Bio,
		UserID:         user.ID,
	}
	if err := s.Repo.CreateDriver(ctx, &driver); err != nil {
		return nil, err
	}
	if err := s.Repo.AddRole(ctx, user.ID, authz.RoleDriver); err != nil && !errors.Is(err, repo.ErrRoleAlreadyAssigned) {
		return nil, err
	}
	driver.User = *user

	l.Info("driver_created", "driver_id", driver.ID, "target_user_id", user.ID)
	return makeDriverResponse(ctx, s.Repo, &driver)
}

func (s *DriverService) Update(ctx context.Context, id authz.Identity, driverID uint, req transport.UpdateDriverRequest) (*transport.DriverResponse, error) {
	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such driver not found")
		}
		return nil, err
	}

	if err := authz.CanUpdateDriver(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	if req.Bio != nil {
		driver.Bio = req.Bio
	}
	if err := s.Repo.SaveDriver(ctx, driver); err != nil {
		return nil, err
	}
	return makeDriverResponse(ctx, s.Repo, driver)
}

// Delete removes the driver profile and the Driver role. Blocked while any
// of the driver's trips is still active.
func (s *DriverService) Delete(ctx context.Context, id authz.Identity, driverID uint) error {
	l := logging.FromContext(ctx).With("svc", "driver.delete", "driver_id", driverID)

	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Such driver not found")
		}
		return err
	}

	if err := authz.CanDeleteDriver(id, driver.UserID); err != nil {
		return err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return err
	}

	active, err := s.Repo.CountDriverTripsByStatus(ctx, driverID, models.TripStatusActive)
	if err != nil {
		return err
	}
	if active != 0 {
		return ruleError("Driver can't be removed because he has active trips")
	}

	if err := s.Repo.DeleteDriver(ctx, driverID, driver.UserID); err != nil {
		return err
	}

	l.Info("driver_deleted", "user_id", driver.UserID)
	return nil
}
