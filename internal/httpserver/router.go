package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/middleware"
	"github.com/TadasTam/LiftSearch-Backend/pkg/tokens"
)

type Deps struct {
	Tokens           *tokens.Service
	AuthHandler      *AuthHTTP
	DriverHandler    *DriverHTTP
	TravelerHandler  *TravelerHTTP
	TripHandler      *TripHTTP
	PassengerHandler *PassengerHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewAuth(d.Tokens)

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/accessToken", d.AuthHandler.Refresh)

	private := api.Group("")
	private.Use(authMw.RequireAuth)

	private.POST("/logout", d.AuthHandler.Logout)

	private.GET("/trips", d.TripHandler.ListAll)

	private.GET("/drivers", d.DriverHandler.List)
	private.POST("/drivers", d.DriverHandler.Create)
	private.GET("/drivers/:driverId", d.DriverHandler.Get)
	private.PUT("/drivers/:driverId", d.DriverHandler.Update)
	private.DELETE("/drivers/:driverId", d.DriverHandler.Delete)
	private.GET("/drivers/:driverId/passengers", d.DriverHandler.Passengers)

	private.GET("/travelers", d.TravelerHandler.List)
	private.POST("/travelers", d.TravelerHandler.Create)
	private.GET("/travelers/:travelerId", d.TravelerHandler.Get)
	private.PUT("/travelers/:travelerId", d.TravelerHandler.Update)
	private.DELETE("/travelers/:travelerId", d.TravelerHandler.Delete)
	private.GET("/travelers/:travelerId/passengers", d.TravelerHandler.Passengers)

	private.GET("/drivers/:driverId/trips", d.TripHandler.List)
	private.POST("/drivers/:driverId/trips", d.TripHandler.Create)
	private.GET("/drivers/:driverId/trips/:tripId", d.TripHandler.Get)
	private.PUT("/drivers/:driverId/trips/:tripId", d.TripHandler.Update)
	private.DELETE("/drivers/:driverId/trips/:tripId", d.TripHandler.Delete)

	private.GET("/drivers/:driverId/trips/:tripId/passengers", d.PassengerHandler.List)
	private.POST("/drivers/:driverId/trips/:tripId/passengers", d.PassengerHandler.Create)
	private.GET("/drivers/:driverId/trips/:tripId/passengers/:passengerId", d.PassengerHandler.Get)
	private.PUT("/drivers/:driverId/trips/:tripId/passengers/:passengerId", d.PassengerHandler.Update)
	private.DELETE("/drivers/:driverId/trips/:tripId/passengers/:passengerId", d.PassengerHandler.Delete)
}
