package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 5 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Service signs and validates the stateless token pair. Tokens are never
// persisted; revocation happens through the force_relogin flag on the user.
type Service struct {
	Secret   []byte
	Issuer   string
	Audience string
}

func NewService(secret []byte, issuer, audience string) *Service {
	return &Service{Secret: secret, Issuer: issuer, Audience: audience}
}

func NewJTI() string { return uuid.NewString() }

func SubjectFor(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func parseSubject(sub string) (uint, error) {
	n, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(n), nil
}

func (s *Service) registeredClaims(userID uint, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now().UTC()
	return jwt.RegisteredClaims{
		Subject:   SubjectFor(userID),
		ID:        NewJTI(),
		Issuer:    s.Issuer,
		Audience:  jwt.ClaimStrings{s.Audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func (s *Service) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.Audience),
		jwt.WithExpirationRequired(),
	}
}

func (s *Service) keyFunc(t *jwt.Token) (any, error) {
	return s.Secret, nil
}
