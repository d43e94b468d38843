package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

func (r *GormRepo) CreatePassenger(ctx context.Context, p *models.Passenger) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetPassenger(ctx context.Context, tripID, passengerID uint) (*models.Passenger, error) {
	var passenger models.Passenger
	if err := r.DB.WithContext(ctx).
		Preload("Traveler").
		Where("id = ? AND trip_id = ?", passengerID, tripID).
		First(&passenger).Error; err != nil {
		return nil, err
	}
	return &passenger, nil
}

func (r *GormRepo) ListPassengersByTrip(ctx context.Context, tripID uint) ([]models.Passenger, error) {
	var passengers []models.Passenger
	if err := r.DB.WithContext(ctx).
		Preload("Traveler").
		Where("trip_id = ?", tripID).
		Order("id ASC").
		Find(&passengers).Error; err != nil {
		return nil, err
	}
	return passengers, nil
}

func (r *GormRepo) ListPassengersByTraveler(ctx context.Context, travelerID uint) ([]models.Passenger, error) {
	var passengers []models.Passenger
	if err := r.DB.WithContext(ctx).
		Preload("Traveler").
		Preload("Trip").
		Where("traveler_id = ?", travelerID).
		Order("id ASC").
		Find(&passengers).Error; err != nil {
		return nil, err
	}
	return passengers, nil
}

func (r *GormRepo) ListPassengersByDriver(ctx context.Context, driverID uint) ([]models.Passenger, error) {
	var passengers []models.Passenger
	if err := r.DB.WithContext(ctx).
		Preload("Traveler").
		Preload("Trip").
		Joins("JOIN trips ON trips.id = passengers.trip_id").
		Where("trips.driver_id = ?", driverID).
		Order("passengers.id ASC").
		Find(&passengers).Error; err != nil {
		return nil, err
	}
	return passengers, nil
}

func (r *GormRepo) SavePassenger(ctx context.Context, p *models.Passenger) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePassenger(ctx context.Context, passengerID uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Passenger{}, passengerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) PassengerExists(ctx context.Context, tripID, travelerID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Passenger{}).
		Where("trip_id = ? AND traveler_id = ?", tripID, travelerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CountPassengersByTrip(ctx context.Context, tripID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Passenger{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return count, err
}
