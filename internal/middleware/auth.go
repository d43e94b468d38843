package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	"github.com/TadasTam/LiftSearch-Backend/pkg/tokens"
)

const identityKey = "identity"

type Auth struct {
	Tokens *tokens.Service
}

func NewAuth(ts *tokens.Service) *Auth {
	return &Auth{Tokens: ts}
}

// RequireAuth validates the bearer access token and stores the decoded
// identity on the request. Handlers read it with IdentityFrom and pass it
// explicitly down the stack; nothing below echo touches the raw token.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Tokens.ParseAccessToken(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(identityKey, authz.Identity{
			UserID:     userID,
			Username:   claims.Username,
			Roles:      authz.RoleSetFromStrings(claims.Roles),
			DriverID:   claims.DriverID,
			TravelerID: claims.TravelerID,
		})
		return next(c)
	}
}

func IdentityFrom(c echo.Context) (authz.Identity, bool) {
	id, ok := c.Get(identityKey).(authz.Identity)
	return id, ok
}
