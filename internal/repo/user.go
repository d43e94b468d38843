package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

var (
	ErrUserAlreadyExist    = errors.New("user already exist")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormRepo) SetForceRelogin(ctx context.Context, userID uint, value bool) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("force_relogin", value).Error
}

// DeleteUser removes the account and everything hanging off it: passenger
// registrations, trips driven, profile rows and roles. Used by the
// traveler-delete path, which cascades the whole identity.
func (r *GormRepo) DeleteUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var driver models.Driver
		err := tx.Where("user_id = ?", userID).First(&driver).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			tripIDs := tx.Model(&models.Trip{}).Select("id").Where("driver_id = ?", driver.ID)
			if err := tx.Where("trip_id IN (?)", tripIDs).Delete(&models.Passenger{}).Error; err != nil {
				return err
			}
			if err := tx.Where("driver_id = ?", driver.ID).Delete(&models.Trip{}).Error; err != nil {
				return err
			}
		}

		var traveler models.Traveler
		err = tx.Where("user_id = ?", userID).First(&traveler).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("traveler_id = ?", traveler.ID).Delete(&models.Passenger{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Traveler{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Driver{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

func (r *GormRepo) GetRoles(ctx context.Context, userID uint) (authz.RoleSet, error) {
	var rows []models.UserRole
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(authz.RoleSet, len(rows))
	for _, row := range rows {
		if role, ok := authz.ParseRole(row.Role); ok {
			set[role] = struct{}{}
		}
	}
	return set, nil
}

func (r *GormRepo) AddRole(ctx context.Context, userID uint, role authz.Role) error {
	row := models.UserRole{UserID: userID, Role: string(role)}
	tx := r.DB.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, string(role)).
		FirstOrCreate(&row)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRoleAlreadyAssigned
	}
	return nil
}
