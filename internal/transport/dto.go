package transport

import (
	"errors"
	"time"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest is accepted for wire compatibility; revocation is keyed on
// the authenticated identity, not the submitted token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type DriverResponse struct {
	ID             uint       `json:"id"`
	TripsCount     int64      `json:"trips_count"`
	CancelledCount int        `json:"cancelled_count"`
	RegisteredDate time.Time  `json:"registered_date"`
	LastTripDate   *time.Time `json:"last_trip_date"`
	Bio            *string    `json:"bio"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
}

type CreateDriverRequest struct {
	TravelerID *uint   `json:"traveler_id"`
	Bio        *string `json:"bio"`
}

type UpdateDriverRequest struct {
	Bio *string `json:"bio"`
}

type TravelerResponse struct {
	ID             uint       `json:"id"`
	TripsCount     int64      `json:"trips_count"`
	CancelledCount int        `json:"cancelled_count"`
	RegisteredDate time.Time  `json:"registered_date"`
	LastTripDate   *time.Time `json:"last_trip_date"`
	Bio            *string    `json:"bio"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
}

type CreateTravelerRequest struct {
	UserID uint    `json:"user_id"`
	Bio    *string `json:"bio"`
}

type UpdateTravelerRequest struct {
	Bio *string `json:"bio"`
}

type TripResponse struct {
	ID           uint              `json:"id"`
	TripDate     time.Time         `json:"trip_date"`
	LastEditTime time.Time         `json:"last_edit_time"`
	SeatsCount   int               `json:"seats_count"`
	StartTime    *int              `json:"start_time"`
	EndTime      *int              `json:"end_time"`
	Price        float64           `json:"price"`
	Description  string            `json:"description"`
	StartCity    string            `json:"start_city"`
	EndCity      string            `json:"end_city"`
	Status       models.TripStatus `json:"status"`
	DriverID     uint              `json:"driver_id"`
}

type CreateTripRequest struct {
	TripDate    time.Time `json:"trip_date"`
	SeatsCount  int       `json:"seats_count"`
	StartTime   *int      `json:"start_time"`
	EndTime     *int      `json:"end_time"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	StartCity   string    `json:"start_city"`
	EndCity     string    `json:"end_city"`
}

type UpdateTripRequest struct {
	SeatsCount  *int               `json:"seats_count"`
	StartTime   *int               `json:"start_time"`
	EndTime     *int               `json:"end_time"`
	Price       *float64           `json:"price"`
	Description *string            `json:"description"`
	StartCity   *string            `json:"start_city"`
	EndCity     *string            `json:"end_city"`
	Status      *models.TripStatus `json:"status"`
}

type PassengerResponse struct {
	ID           uint    `json:"id"`
	Confirmed    bool    `json:"confirmed"`
	StartCity    string  `json:"start_city"`
	EndCity      string  `json:"end_city"`
	StartAddress *string `json:"start_address"`
	EndAddress   *string `json:"end_address"`
	Comment      *string `json:"comment"`
	TravelerID   uint    `json:"traveler_id"`
	TripID       uint    `json:"trip_id"`
	DriverID     uint    `json:"driver_id"`
}

type CreatePassengerRequest struct {
	StartCity    string  `json:"start_city"`
	EndCity      string  `json:"end_city"`
	StartAddress *string `json:"start_address"`
	EndAddress   *string `json:"end_address"`
	Comment      *string `json:"comment"`
}

type UpdatePassengerRequest struct {
	Confirmed    *bool   `json:"confirmed"`
	StartCity    *string `json:"start_city"`
	EndCity      *string `json:"end_city"`
	StartAddress *string `json:"start_address"`
	EndAddress   *string `json:"end_address"`
	Comment      *string `json:"comment"`
}

func checkCity(name string) error {
	if len(name) < 4 || len(name) > 20 {
		return errors.New("city name must be 4 to 20 characters")
	}
	return nil
}

func checkAddress(addr *string) error {
	if addr != nil && (len(*addr) < 4 || len(*addr) > 30) {
		return errors.New("address must be 4 to 30 characters")
	}
	return nil
}

func checkMinuteOfDay(v *int) error {
	if v != nil && (*v < 0 || *v > 1440) {
		return errors.New("time must be between 0 and 1440 minutes")
	}
	return nil
}

func checkDescription(desc string) error {
	if len(desc) > 200 {
		return errors.New("description too long")
	}
	return nil
}

func checkBio(bio *string) error {
	if bio != nil && len(*bio) > 200 {
		return errors.New("bio too long")
	}
	return nil
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Email == "" {
		return errors.New("username, password and email are required")
	}
	return nil
}

func (r LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

func (r CreateDriverRequest) Validate() error { return checkBio(r.Bio) }
func (r UpdateDriverRequest) Validate() error { return checkBio(r.Bio) }

func (r CreateTravelerRequest) Validate() error { return checkBio(r.Bio) }
func (r UpdateTravelerRequest) Validate() error { return checkBio(r.Bio) }

func (r CreateTripRequest) Validate() error {
	if r.TripDate.IsZero() || !r.TripDate.After(time.Now()) {
		return errors.New("trip date must be in the future")
	}
	if r.SeatsCount <= 0 {
		return errors.New("seats count must be positive")
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	for _, t := range []*int{r.StartTime, r.EndTime} {
		if err := checkMinuteOfDay(t); err != nil {
			return err
		}
	}
	if err := checkDescription(r.Description); err != nil {
		return err
	}
	for _, city := range []string{r.StartCity, r.EndCity} {
		if err := checkCity(city); err != nil {
			return err
		}
	}
	return nil
}

func (r UpdateTripRequest) Validate() error {
	if r.SeatsCount != nil && *r.SeatsCount <= 0 {
		return errors.New("seats count must be positive")
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	for _, t := range []*int{r.StartTime, r.EndTime} {
		if err := checkMinuteOfDay(t); err != nil {
			return err
		}
	}
	if r.Description != nil {
		if err := checkDescription(*r.Description); err != nil {
			return err
		}
	}
	for _, city := range []*string{r.StartCity, r.EndCity} {
		if city != nil {
			if err := checkCity(*city); err != nil {
				return err
			}
		}
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("unknown trip status")
	}
	return nil
}

func (r CreatePassengerRequest) Validate() error {
	for _, city := range []string{r.StartCity, r.EndCity} {
		if err := checkCity(city); err != nil {
			return err
		}
	}
	for _, addr := range []*string{r.StartAddress, r.EndAddress} {
		if err := checkAddress(addr); err != nil {
			return err
		}
	}
	if r.Comment != nil {
		return checkDescription(*r.Comment)
	}
	return nil
}

func (r UpdatePassengerRequest) Validate() error {
	for _, city := range []*string{r.StartCity, r.EndCity} {
		if city != nil {
			if err := checkCity(*city); err != nil {
				return err
			}
		}
	}
	for _, addr := range []*string{r.StartAddress, r.EndAddress} {
		if err := checkAddress(addr); err != nil {
			return err
		}
	}
	if r.Comment != nil {
		return checkDescription(*r.Comment)
	}
	return nil
}
