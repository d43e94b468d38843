package service

import (
	"context"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
)

func makeDriverResponse(ctx context.Context, r *repo.GormRepo, d *models.Driver) (*transport.DriverResponse, error) {
	finished, err := r.CountDriverTripsByStatus(ctx, d.ID, models.TripStatusFinished)
	if err != nil {
		return nil, err
	}
	return &transport.DriverResponse{
		ID:             d.ID,
		TripsCount:     finished,
		CancelledCount: d.CancelledCount,
		RegisteredDate: d.RegisteredDate,
		LastTripDate:   d.LastTripDate,
		Bio:            d.Bio,
		Name:           d.User.Username,
		Email:          d.User.Email,
	}, nil
}

func makeTravelerResponse(ctx context.Context, r *repo.GormRepo, t *models.Traveler) (*transport.TravelerResponse, error) {
	finished, err := r.CountTravelerTripsByStatus(ctx, t.ID, models.TripStatusFinished)
	if err != nil {
		return nil, err
	}
	return &transport.TravelerResponse{
		ID:             t.ID,
		TripsCount:     finished,
		CancelledCount: t.CancelledCount,
		RegisteredDate: t.RegisteredDate,
		LastTripDate:   t.LastTripDate,
		Bio:            t.Bio,
		Name:           t.User.Username,
		Email:          t.User.Email,
	}, nil
}

func makeTripResponse(t *models.Trip) transport.TripResponse {
	return transport.TripResponse{
		ID:           t.ID,
		TripDate:     t.TripDate,
		LastEditTime: t.LastEditTime,
		SeatsCount:   t.SeatsCount,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Price:        t.Price,
		Description:  t.Description,
		StartCity:    t.StartCity,
		EndCity:      t.EndCity,
		Status:       t.Status,
		DriverID:     t.DriverID,
	}
}

func makePassengerResponse(p *models.Passenger, driverID uint) transport.PassengerResponse {
	return transport.PassengerResponse{
		ID:           p.ID,
		Confirmed:    p.Confirmed,
		StartCity:    p.StartCity,
		EndCity:      p.EndCity,
		StartAddress: p.StartAddress,
		EndAddress:   p.EndAddress,
		Comment:      p.Comment,
		TravelerID:   p.TravelerID,
		TripID:       p.TripID,
		DriverID:     driverID,
	}
}
