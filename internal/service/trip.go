package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/events"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/internal/search"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type TripService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Index    *search.TripIndex
}

func (s *TripService) getDriver(ctx context.Context, driverID uint) (*models.Driver, error) {
	driver, err := s.Repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such driver not found")
		}
		return nil, err
	}
	return driver, nil
}

func (s *TripService) List(ctx context.Context, driverID uint) ([]transport.TripResponse, error) {
	if _, err := s.getDriver(ctx, driverID); err != nil {
		return nil, err
	}

	trips, err := s.Repo.ListTripsByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, makeTripResponse(&trips[i]))
	}
	return out, nil
}

func (s *TripService) ListAll(ctx context.Context) ([]transport.TripResponse, error) {
	trips, err := s.Repo.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, makeTripResponse(&trips[i]))
	}
	return out, nil
}

// SearchAll serves the q= variant of the trip listing from the search index.
func (s *TripService) SearchAll(ctx context.Context, query string, from, size int) (int64, []transport.TripResponse, error) {
	if !s.Index.Enabled() {
		return 0, nil, ruleError("Trip search is not available")
	}
	total, trips, err := s.Index.Search(ctx, query, from, size)
	if err != nil {
		return 0, nil, err
	}
	out := make([]transport.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, makeTripResponse(&trips[i]))
	}
	return total, out, nil
}

func (s *TripService) Get(ctx context.Context, driverID, tripID uint) (*transport.TripResponse, error) {
	if _, err := s.getDriver(ctx, driverID); err != nil {
		return nil, err
	}

	trip, err := s.Repo.GetTrip(ctx, driverID, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such trip not found")
		}
		return nil, err
	}
	dto := makeTripResponse(trip)
	return &dto, nil
}

func (s *TripService) Create(ctx context.Context, id authz.Identity, driverID uint, req transport.CreateTripRequest) (*transport.TripResponse, error) {
	l := logging.FromContext(ctx).With("svc", "trip.create", "driver_id", driverID)

	if req.StartTime != nil && req.EndTime != nil && *req.StartTime >= *req.EndTime {
		return nil, ruleError("Start time cannot be later than end time")
	}

	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageTrip(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip := models.Trip{
		TripDate:     req.TripDate.UTC(),
		LastEditTime: now,
		SeatsCount:   req.SeatsCount,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Price:        req.Price,
		Description:  req.Description,
		StartCity:    req.StartCity,
		EndCity:      req.EndCity,
		Status:       models.TripStatusActive,
		DriverID:     driverID,
	}
	if err := s.Repo.CreateTrip(ctx, &trip); err != nil {
		return nil, err
	}

	if err := s.Index.IndexTrip(ctx, &trip); err != nil {
		l.Warn("index_failed", "trip_id", trip.ID, "error", err)
	}
	if err := s.Producer.Publish(ctx, events.TopicTripEvents, strconv.FormatUint(uint64(trip.ID), 10), map[string]any{
		"type":      "trip_created",
		"trip_id":   trip.ID,
		"driver_id": driverID,
	}); err != nil {
		l.Warn("publish_failed", "error", err)
	}

	l.Info("trip_created", "trip_id", trip.ID)
	dto := makeTripResponse(&trip)
	return &dto, nil
}

func (s *TripService) Update(ctx context.Context, id authz.Identity, driverID, tripID uint, req transport.UpdateTripRequest) (*transport.TripResponse, error) {
	l := logging.FromContext(ctx).With("svc", "trip.update", "trip_id", tripID)

	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageTrip(id, driver.UserID); err != nil {
		return nil, err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return nil, err
	}

	trip, err := s.Repo.GetTrip(ctx, driverID, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Such trip not found")
		}
		return nil, err
	}

	if req.SeatsCount != nil {
		trip.SeatsCount = *req.SeatsCount
	}
	if req.StartTime != nil {
		trip.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		trip.EndTime = req.EndTime
	}
	if req.Price != nil {
		trip.Price = *req.Price
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartCity != nil {
		trip.StartCity = *req.StartCity
	}
	if req.EndCity != nil {
		trip.EndCity = *req.EndCity
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}
	// Check the interval after the patch is applied, otherwise a lone
	// StartTime update could slip past the stored EndTime.
	if trip.StartTime != nil && trip.EndTime != nil && *trip.StartTime >= *trip.EndTime {
		return nil, ruleError("Start time cannot be later than end time")
	}
	trip.LastEditTime = time.Now().UTC()

	if err := s.Repo.SaveTrip(ctx, trip); err != nil {
		return nil, err
	}

	if err := s.Index.IndexTrip(ctx, trip); err != nil {
		l.Warn("index_failed", "error", err)
	}

	dto := makeTripResponse(trip)
	return &dto, nil
}

// Delete removes the trip and counts it against the driver as a cancellation.
func (s *TripService) Delete(ctx context.Context, id authz.Identity, driverID, tripID uint) error {
	l := logging.FromContext(ctx).With("svc", "trip.delete", "trip_id", tripID)

	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return err
	}
	if err := authz.CanManageTrip(id, driver.UserID); err != nil {
		return err
	}
	if err := requireActiveUser(ctx, s.Repo, id); err != nil {
		return err
	}

	if _, err := s.Repo.GetTrip(ctx, driverID, tripID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Such trip not found")
		}
		return err
	}

	driver.CancelledCount++
	if err := s.Repo.SaveDriver(ctx, driver); err != nil {
		return err
	}
	if err := s.Repo.DeleteTrip(ctx, tripID); err != nil {
		return err
	}

	if err := s.Index.DeleteTrip(ctx, tripID); err != nil {
		l.Warn("index_delete_failed", "error", err)
	}
	if err := s.Producer.Publish(ctx, events.TopicTripEvents, strconv.FormatUint(uint64(tripID), 10), map[string]any{
		"type":      "trip_deleted",
		"trip_id":   tripID,
		"driver_id": driverID,
	}); err != nil {
		l.Warn("publish_failed", "error", err)
	}

	l.Info("trip_deleted")
	return nil
}
