package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type PassengerService struct {
	Repo *repo.GormRepo
}

func (s *PassengerService) getDriverAndTrip(ctx context.Context, driverID, tripID uint) (*models.Driver, *models.Trip, error) {
	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError("Such driver not found")
		}
		return nil, nil, err
	}
	trip, err := s.Repo.GetTrip(ctx, driverID, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError("Such trip not found")
		}
		return nil, nil, err
	}
	return driver, trip, nil
}

func (s *PassengerService) List(ctx context.Context, id authz.Identity, driverID, tripID uint) ([]transport.PassengerResponse, error) {
	driver, trip, err := s.getDriverAndTrip(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanReadTripPassengers(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	passengers, err := s.Repo.ListPassengersByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.PassengerResponse, 0, len(passengers))
	for i := range passengers {
		out = append(out, makePassengerResponse(&passengers[i], driverID))
	}
	return out, nil
}

func (s *PassengerService) Get(ctx context.Context, id authz.Identity, driverID, tripID, passengerID uint) (*transport.PassengerResponse, error) {
	driver, trip, err := s.getDriverAndTrip(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanReadTripPassengers(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	passenger, err := s.Repo.GetPassenger(ctx, trip.ID, passengerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such passenger not found")
		}
		return nil, err
	}
	dto := makePassengerResponse(passenger, driverID)
	return &dto, nil
}

// Create registers the calling traveler on the trip. The trip's own driver
// cannot register, double registrations are rejected and the trip must still
// have a free seat.
func (s *PassengerService) Create(ctx context.Context, id authz.Identity, driverID, tripID uint, req transport.CreatePassengerRequest) (*transport.PassengerResponse, error) {
	l := logging.FromContext(ctx).With("svc", "passenger.create", "trip_id", tripID, "user_id", id.UserID)

	if err := authz.CanCreatePassenger(id); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	driver, trip, err := s.getDriverAndTrip(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	if driver.UserID == id.UserID {
		return nil, ruleError("Driver cannot register to it's own trip")
	}

	traveler, err := s.Repo.GetTravelerByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ruleError("Invalid token")
		}
		return nil, err
	}

	exists, err := s.Repo.PassengerExists(ctx, trip.ID, traveler.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ruleError("This user has already registered to this trip")
	}

	taken, err := s.Repo.CountPassengersByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if taken >= int64(trip.SeatsCount) {
		return nil, ruleError("This trip has no free seats left")
	}

	passenger := models.Passenger{
		Confirmed:    false,
		StartCity:    req.StartCity,
		EndCity:      req.EndCity,
		StartAddress: req.StartAddress,
		EndAddress:   req.EndAddress,
		Comment:      req.Comment,
		TripID:       trip.ID,
		TravelerID:   traveler.ID,
	}
	if err := s.Repo.CreatePassenger(ctx, &passenger); err != nil {
		return nil, err
	}

	l.Info("passenger_created", "passenger_id", passenger.ID)
	dto := makePassengerResponse(&passenger, driverID)
	return &dto, nil
}

func (s *PassengerService) Update(ctx context.Context, id authz.Identity, driverID, tripID, passengerID uint, req transport.UpdatePassengerRequest) (*transport.PassengerResponse, error) {
	_, trip, err := s.getDriverAndTrip(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	passenger, err := s.Repo.GetPassenger(ctx, trip.ID, passengerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such passenger not found")
		}
		return nil, err
	}

	if err := authz.CanUpdatePassenger(id, passenger.Traveler.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	if req.Confirmed != nil {
		passenger.Confirmed = *req.Confirmed
	}
	if req.StartCity != nil {
		passenger.StartCity = *req.StartCity
	}
	if req.EndCity != nil {
		passenger.EndCity = *req.EndCity
	}
	if req.StartAddress != nil {
		passenger.StartAddress = req.StartAddress
	}
	if req.EndAddress != nil {
		passenger.EndAddress = req.EndAddress
	}
	if req.Comment != nil {
		passenger.Comment = req.Comment
	}

	if err := s.Repo.SavePassenger(ctx, passenger); err != nil {
		return nil, err
	}
	dto := makePassengerResponse(passenger, driverID)
	return &dto, nil
}

// Delete withdraws a registration and counts it against the traveler as a
// cancellation.
func (s *PassengerService) Delete(ctx context.Context, id authz.Identity, driverID, tripID, passengerID uint) error {
	l := logging.FromContext(ctx).With("svc", "passenger.delete", "passenger_id", passengerID)

	driver, trip, err := s.getDriverAndTrip(ctx, driverID, tripID)
	if err != nil {
		return err
	}

	passenger, err := s.Repo.GetPassenger(ctx, trip.ID, passengerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Such passenger not found")
		}
		return err
	}

	if err := authz.CanDeletePassenger(id, driver.UserID, passenger.Traveler.UserID); err != nil {
		return err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return err
	}

	passenger.Traveler.CancelledCount++
	if err := s.Repo.SaveTraveler(ctx, &passenger.Traveler); err != nil {
		return err
	}
	if err := s.Repo.DeletePassenger(ctx, passengerID); err != nil {
		return err
	}

	l.Info("passenger_deleted")
	return nil
}
