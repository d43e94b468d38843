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

type TravelerService struct {
	Repo *repo.GormRepo
}

func (s *TravelerService) List(ctx context.Context, id authz.Identity) ([]transport.TravelerResponse, error) {
	if err := authz.CanListTravelers(id); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	travelers, err := s.Repo.ListTravelers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.TravelerResponse, 0, len(travelers))
	for i := range travelers {
		dto, err := makeTravelerResponse(ctx, s.Repo, &travelers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *TravelerService) Get(ctx context.Context, id authz.Identity, travelerID uint) (*transport.TravelerResponse, error) {
	traveler, err := s.Repo.GetTraveler(ctx, travelerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such traveler not found")
		}
		return nil, err
	}

	if err := authz.CanReadTraveler(id, traveler.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	return makeTravelerResponse(ctx, s.Repo, traveler)
}

func (s *TravelerService) Passengers(ctx context.Context, id authz.Identity, travelerID uint) ([]transport.PassengerResponse, error) {
	traveler, err := s.Repo.GetTraveler(ctx, travelerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such traveler not found")
		}
		return nil, err
	}

	if err := authz.CanReadTravelerPassengers(id, traveler.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	passengers, err := s.Repo.ListPassengersByTraveler(ctx, travelerID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.PassengerResponse, 0, len(passengers))
	for i := range passengers {
		out = append(out, makePassengerResponse(&passengers[i], passengers[i].Trip.DriverID))
	}
	return out, nil
}

// Create adds a traveler profile to an existing user. Admin only; ordinary
// users get theirs at registration.
func (s *TravelerService) Create(ctx context.Context, id authz.Identity, req transport.CreateTravelerRequest) (*transport.TravelerResponse, error) {
	if err := authz.CanCreateTraveler(id); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such user not found")
		}
		return nil, err
	}

	if _, err := s.Repo.GetTravelerByUserID(ctx, user.ID); err == nil {
		return nil, ruleError("This user is already a traveler")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	traveler := models.Traveler{
		CancelledCount: 0,
		RegisteredDate: time.Now().UTC(),
		Bio:            req.Bio,
		UserID:         user.ID,
	}
	if err := s.Repo.CreateTraveler(ctx, &traveler); err != nil {
		return nil, err
	}
	if err := s.Repo.AddRole(ctx, user.ID, authz.RoleTraveler); err != nil && !errors.Is(err, repo.ErrRoleAlreadyAssigned) {
		return nil, err
	}
	traveler.User = *user

	return makeTravelerResponse(ctx, s.Repo, &traveler)
}

func (s *TravelerService) Update(ctx context.Context, id authz.Identity, travelerID uint, req transport.UpdateTravelerRequest) (*transport.TravelerResponse, error) {
	traveler, err := s.Repo.GetTraveler(ctx, travelerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such traveler not found")
		}
		return nil, err
	}

	if err := authz.CanUpdateTraveler(id, traveler.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	if req.Bio != nil {
		traveler.Bio = req.Bio
	}
	if err := s.Repo.SaveTraveler(ctx, traveler); err != nil {
		return nil, err
	}
	return makeTravelerResponse(ctx, s.Repo, traveler)
}

// Delete cascades the whole account: profile rows, roles and the user record
// go together. Blocked while the person has active trips on either side of
// the wheel.
func (s *TravelerService) Delete(ctx context.Context, id authz.Identity, travelerID uint) error {
	l := logging.FromContext(ctx).With("svc", "traveler.delete", "traveler_id", travelerID)

	traveler, err := s.Repo.GetTraveler(ctx, travelerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Such traveler not found")
		}
		return err
	}

	if err := authz.CanDeleteTraveler(id, traveler.UserID); err != nil {
		return err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return err
	}

	activeAsPassenger, err := s.Repo.CountTravelerTripsByStatus(ctx, travelerID, models.TripStatusActive)
	if err != nil {
		return err
	}
	if activeAsPassenger != 0 {
		return ruleError("Traveler can't be removed because he has active trips")
	}

	if driver, err := s.Repo.GetDriverByUserID(ctx, traveler.UserID); err == nil {
		activeAsDriver, err := s.Repo.CountDriverTripsByStatus(ctx, driver.ID, models.TripStatusActive)
		if err != nil {
			return err
		}
		if activeAsDriver != 0 {
			return ruleError("Driver can't be removed because he has active trips")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.Repo.DeleteUser(ctx, traveler.UserID); err != nil {
		return err
	}

	l.Info("traveler_deleted", "user_id", traveler.UserID)
	return nil
}
