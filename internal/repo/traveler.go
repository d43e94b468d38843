package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

func (r *GormRepo) CreateTraveler(ctx context.Context, t *models.Traveler) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetTraveler(ctx context.Context, id uint) (*models.Traveler, error) {
	var traveler models.Traveler
	if err := r.DB.WithContext(ctx).Preload("User").Where("id = ?", id).First(&traveler).Error; err != nil {
		return nil, err
	}
	return &traveler, nil
}

func (r *GormRepo) GetTravelerByUserID(ctx context.Context, userID uint) (*models.Traveler, error) {
	var traveler models.Traveler
	if err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&traveler).Error; err != nil {
		return nil, err
	}
	return &traveler, nil
}

func (r *GormRepo) ListTravelers(ctx context.Context) ([]models.Traveler, error) {
	var travelers []models.Traveler
	if err := r.DB.WithContext(ctx).Preload("User").Order("id ASC").Find(&travelers).Error; err != nil {
		return nil, err
	}
	return travelers, nil
}

func (r *GormRepo) SaveTraveler(ctx context.Context, t *models.Traveler) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

func (r *GormRepo) DeleteTraveler(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Traveler{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTravelerTripsByStatus counts the traveler's passenger registrations on
// trips in the given status.
func (r *GormRepo) CountTravelerTripsByStatus(ctx context.Context, travelerID uint, status models.TripStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Passenger{}).
		Joins("JOIN trips ON trips.id = passengers.trip_id").
		Where("passengers.traveler_id = ? AND trips.status = ?", travelerID, string(status)).
		Count(&count).Error
	return count, err
}
