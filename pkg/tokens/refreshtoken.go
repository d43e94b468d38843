package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshClaims carries only the subject and a unique token id. Whether the
// token is still honored is re-checked against the user's force_relogin flag
// at redemption time.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

func (c *RefreshClaims) UserID() (uint, error) {
	return parseSubject(c.Subject)
}

func (s *Service) CreateRefreshToken(userID uint) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: s.registeredClaims(userID, RefreshTokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseRefreshToken reports expiry as ErrTokenExpired, distinct from every
// other failure, so the refresh endpoint can answer 401 instead of 422. The
// jwt library only validates claims after the signature checks out, which is
// exactly the distinction the contract needs.
func (s *Service) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
