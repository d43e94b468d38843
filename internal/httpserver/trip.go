package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type TripHTTP struct {
	Svc *service.TripService
}

// ListAll serves GET /api/trips. With a q query parameter the trips come
// from the search index, otherwise straight from the database.
func (h *TripHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_list_all")

	if q := c.QueryParam("q"); q != "" {
		from, size := pageWindow(c.QueryParam("page"), c.QueryParam("size"))
		total, trips, err := h.Svc.SearchAll(ctx, q, from, size)
		if err != nil {
			return fail(l, "trip_search_failed", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "trips": trips})
	}

	trips, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(l, "trip_list_all_failed", err)
	}
	return c.JSON(http.StatusOK, trips)
}

func (h *TripHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_list")

	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	trips, err := h.Svc.List(ctx, driverID)
	if err != nil {
		return fail(l, "trip_list_failed", err)
	}
	return c.JSON(http.StatusOK, trips)
}

func (h *TripHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_get")

	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}
	tripID, err := paramID(c, "tripId")
	if err != nil {
		return err
	}

	trip, err := h.Svc.Get(ctx, driverID, tripID)
	if err != nil {
		return fail(l, "trip_get_failed", err)
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_create")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	var req transport.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("trip_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("trip_create_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.Svc.Create(ctx, id, driverID, req)
	if err != nil {
		return fail(l, "trip_create_failed", err)
	}

	l.Info("trip_created", "trip_id", trip.ID, "driver_id", driverID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/drivers/%d/trips/%d", driverID, trip.ID))
	return c.JSON(http.StatusCreated, trip)
}

func (h *TripHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_update")

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

	var req transport.UpdateTripRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("trip_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("trip_update_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.Svc.Update(ctx, id, driverID, tripID, req)
	if err != nil {
		return fail(l, "trip_update_failed", err)
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_delete")

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

	if err := h.Svc.Delete(ctx, id, driverID, tripID); err != nil {
		return fail(l, "trip_delete_failed", err)
	}

	l.Info("trip_deleted", "trip_id", tripID, "driver_id", driverID)
	return c.NoContent(http.StatusNoContent)
}
