package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"not null"                 json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	ForceRelogin bool   `gorm:"default:false"            json:"-"`
}

// UserRole is one role membership row; a user holds the set of rows with its
// id. Roles come from the closed enumeration in internal/authz.
type UserRole struct {
	ID     uint   `gorm:"primaryKey"                       json:"id"`
	UserID uint   `gorm:"index;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role   string `gorm:"not null;uniqueIndex:idx_user_role"       json:"role"`
}

type Driver struct {
	ID             uint       `gorm:"primaryKey"        json:"id"`
	CancelledCount int        `gorm:"not null"          json:"cancelled_count"`
	RegisteredDate time.Time  `gorm:"not null"          json:"registered_date"`
	LastTripDate   *time.Time `json:"last_trip_date"`
	Bio            *string    `json:"bio"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User       `json:"-"`
}

type Traveler struct {
	ID             uint       `gorm:"primaryKey"        json:"id"`
	CancelledCount int        `gorm:"not null"          json:"cancelled_count"`
	RegisteredDate time.Time  `gorm:"not null"          json:"registered_date"`
	LastTripDate   *time.Time `json:"last_trip_date"`
	Bio            *string    `json:"bio"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User       `json:"-"`
}

type TripStatus string

const (
	TripStatusActive    TripStatus = "Active"
	TripStatusFinished  TripStatus = "Finished"
	TripStatusCancelled TripStatus = "Cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusActive, TripStatusFinished, TripStatusCancelled:
		return true
	}
	return false
}

type Trip struct {
	ID           uint       `gorm:"primaryKey"     json:"id"`
	TripDate     time.Time  `gorm:"not null"       json:"trip_date"`
	LastEditTime time.Time  `gorm:"not null"       json:"last_edit_time"`
	SeatsCount   int        `gorm:"not null"       json:"seats_count"`
	StartTime    *int       `json:"start_time"`
	EndTime      *int       `json:"end_time"`
	Price        float64    `gorm:"not null"       json:"price"`
	Description  string     `json:"description"`
	StartCity    string     `gorm:"not null"       json:"start_city"`
	EndCity      string     `gorm:"not null"       json:"end_city"`
	Status       TripStatus `gorm:"not null"       json:"status"`
	DriverID     uint       `gorm:"index;not null" json:"driver_id"`
	Driver       Driver     `json:"-"`
}

type Passenger struct {
	ID           uint     `gorm:"primaryKey"     json:"id"`
	Confirmed    bool     `gorm:"default:false"  json:"confirmed"`
	StartCity    string   `gorm:"not null"       json:"start_city"`
	EndCity      string   `gorm:"not null"       json:"end_city"`
	StartAddress *string  `json:"start_address"`
	EndAddress   *string  `json:"end_address"`
	Comment      *string  `json:"comment"`
	TripID       uint     `gorm:"index;not null;uniqueIndex:idx_trip_traveler" json:"trip_id"`
	Trip         Trip     `json:"-"`
	TravelerID   uint     `gorm:"not null;uniqueIndex:idx_trip_traveler"       json:"traveler_id"`
	Traveler     Traveler `json:"-"`
}
