package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

func (r *GormRepo) CreateDriver(ctx context.Context, d *models.Driver) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *GormRepo) GetDriver(ctx context.Context, id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.DB.WithContext(ctx).Preload("User").Where("id = ?", id).First(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *GormRepo) GetDriverByUserID(ctx context.Context, userID uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *GormRepo) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := r.DB.WithContext(ctx).Preload("User").Order("id ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *GormRepo) SaveDriver(ctx context.Context, d *models.Driver) error {
	return r.DB.WithContext(ctx).Save(d).Error
}

// DeleteDriver removes the profile, its Driver role, its trips and their
// passenger registrations in one transaction, so the foreign keys stay
// satisfied and a failure leaves the role in place.
func (r *GormRepo) DeleteDriver(ctx context.Context, id, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripIDs := tx.Model(&models.Trip{}).Select("id").Where("driver_id = ?", id)
		if err := tx.Where("trip_id IN (?)", tripIDs).Delete(&models.Passenger{}).Error; err != nil {
			return err
		}
		if err := tx.Where("driver_id = ?", id).Delete(&models.Trip{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND role = ?", userID, string(authz.RoleDriver)).
			Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Driver{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CountDriverTripsByStatus(ctx context.Context, driverID uint, status models.TripStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Trip{}).
		Where("driver_id = ? AND status = ?", driverID, string(status)).
		Count(&count).Error
	return count, err
}
