package tokens

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the short-lived credential presented on every API call.
// DriverID and TravelerID are -1 when the user does not hold that role, so
// the claim set always reflects the profile rows that existed at issuance.
type AccessClaims struct {
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
	DriverID   int      `json:"driverid"`
	TravelerID int      `json:"travelerid"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) UserID() (uint, error) {
	return parseSubject(c.Subject)
}

func (s *Service) CreateAccessToken(username string, userID uint, roles []string, driverID, travelerID int) (string, error) {
	claims := AccessClaims{
		Username:         username,
		Roles:            roles,
		DriverID:         driverID,
		TravelerID:       travelerID,
		RegisteredClaims: s.registeredClaims(userID, AccessTokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseAccessToken deliberately collapses every failure, expiry included,
// into ErrTokenInvalid: callers only need a pass/fail signal here.
func (s *Service) ParseAccessToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, s.keyFunc, s.parserOptions()...)
	if err != nil || !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
