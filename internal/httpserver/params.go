package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
	mw "github.com/TadasTam/LiftSearch-Backend/internal/middleware"
)

func paramID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not a valid id")
	}
	return uint(n), nil
}

func callerIdentity(c echo.Context) (authz.Identity, error) {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}
	return id, nil
}
