package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

func (r *GormRepo) CreateTrip(ctx context.Context, t *models.Trip) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetTrip(ctx context.Context, driverID, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND driver_id = ?", tripID, driverID).
		First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *GormRepo) ListTripsByDriver(ctx context.Context, driverID uint) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.DB.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("id ASC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *GormRepo) ListTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *GormRepo) SaveTrip(ctx context.Context, t *models.Trip) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

// DeleteTrip removes the trip and any passenger registrations on it in one
// transaction.
func (r *GormRepo) DeleteTrip(ctx context.Context, tripID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Passenger{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Trip{}, tripID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
