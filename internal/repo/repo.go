package repo

import (
	"gorm.io/gorm"
)

// GormRepo is the persistence boundary. Every method takes a context and
// maps straight onto gorm calls; all business decisions stay in the services.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
