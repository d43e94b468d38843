package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type DriverHTTP struct {
	Svc *service.DriverService
}

func (h *DriverHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_list")

	drivers, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "driver_list_failed", err)
	}
	return c.JSON(http.StatusOK, drivers)
}

func (h *DriverHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_get")

	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	driver, err := h.Svc.Get(ctx, driverID)
	if err != nil {
		return fail(l, "driver_get_failed", err)
	}
	return c.JSON(http.StatusOK, driver)
}

func (h *DriverHTTP) Passengers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_passengers")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	passengers, err := h.Svc.Passengers(ctx, id, driverID)
	if err != nil {
		return fail(l, "driver_passengers_failed", err)
	}
	return c.JSON(http.StatusOK, passengers)
}

func (h *DriverHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_create")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req transport.CreateDriverRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("driver_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("driver_create_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	driver, err := h.Svc.Create(ctx, id, req)
	if err != nil {
		return fail(l, "driver_create_failed", err)
	}

	l.Info("driver_created", "driver_id", driver.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/drivers/%d", driver.ID))
	return c.JSON(http.StatusCreated, driver)
}

func (h *DriverHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_update")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	var req transport.UpdateDriverRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("driver_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("driver_update_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	driver, err := h.Svc.Update(ctx, id, driverID, req)
	if err != nil {
		return fail(l, "driver_update_failed", err)
	}
	return c.JSON(http.StatusOK, driver)
}

func (h *DriverHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "driver_delete")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	driverID, err := paramID(c, "driverId")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id, driverID); err != nil {
		return fail(l, "driver_delete_failed", err)
	}

	l.Info("driver_deleted", "driver_id", driverID)
	return c.NoContent(http.StatusNoContent)
}
