package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type PassengerHTTP struct {
	Svc *service.PassengerService
}

func (h *PassengerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "passenger_list")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}

	passengers, err := h.Svc.List(ctx, id, driverID, tripID)
	if err != nil {
		return fail(l, "passenger_list_failed", err)
	}
	return c.JSON(http.StatusOK, passengers)
}

func (h *PassengerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "passenger_get")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}
	passengerID, err := paramID(c, "passengerId")
	if err != nil {
		return err
	}

	passenger, err := h.Svc.Get(ctx, id, driverID, tripID, passengerID)
	if err != nil {
		return fail(l, "passenger_get_failed", err)
	}
	return c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "passenger_create")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}

	var req transport.CreatePassengerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("passenger_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("passenger_create_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	passenger, err := h.Svc.Create(ctx, id, driverID, tripID, req)
	if err != nil {
		return fail(l, "passenger_create_failed", err)
	}

	l.Info("passenger_created", "passenger_id", passenger.ID, "trip_id", tripID)
	c.Response().Header().Set(echo.HeaderLocation,
		fmt.Sprintf("/api/drivers/%d/trips/%d/passengers/%d", driverID, tripID, passenger.ID))
	return c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "passenger_update")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}
	passengerID, err := paramID(c, "passengerId")
	if err != nil {
		return err
	}

	var req transport.UpdatePassengerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("passenger_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("passenger_update_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	passenger, err := h.Svc.Update(ctx, id, driverID, tripID, passengerID, req)
	if err != nil {
		return fail(l, "passenger_update_failed", err)
	}
	return c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "passenger_delete")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}
	passengerID, err := paramID(c, "passengerId")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id, driverID, tripID, passengerID); err != nil {
		return fail(l, "passenger_delete_failed", err)
	}

	l.Info("passenger_deleted", "passenger_id", passengerID, "trip_id", tripID)
	return c.NoContent(http.StatusNoContent)
}
