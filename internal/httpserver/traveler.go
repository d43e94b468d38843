package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type TravelerHTTP struct {
	Svc *service.TravelerService
}

func (h *TravelerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_list")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}

	travelers, err := h.Svc.List(ctx, id)
	if err != nil {
		return fail(l, "traveler_list_failed", err)
	}
	return c.JSON(http.StatusOK, travelers)
}

func (h *TravelerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_get")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	travelerID, err := paramID(c, "travelerId")
	if err != nil {
		return err
	}

	traveler, err := h.Svc.Get(ctx, id, travelerID)
	if err != nil {
		return fail(l, "traveler_get_failed", err)
	}
	return c.JSON(http.StatusOK, traveler)
}

func (h *TravelerHTTP) Passengers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_passengers")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	travelerID, err := paramID(c, "travelerId")
	if err != nil {
		return err
	}

	passengers, err := h.Svc.Passengers(ctx, id, travelerID)
	if err != nil {
		return fail(l, "traveler_passengers_failed", err)
	}
	return c.JSON(http.StatusOK, passengers)
}

func (h *TravelerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_create")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req transport.CreateTravelerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("traveler_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("traveler_create_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	traveler, err := h.Svc.Create(ctx, id, req)
	if err != nil {
		return fail(l, "traveler_create_failed", err)
	}

	l.Info("traveler_created", "traveler_id", traveler.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/travelers/%d", traveler.ID))
	return c.JSON(http.StatusCreated, traveler)
}

func (h *TravelerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_update")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	travelerID, err := paramID(c, "travelerId")
	if err != nil {
		return err
	}

	var req transport.UpdateTravelerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("traveler_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("traveler_update_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	traveler, err := h.Svc.Update(ctx, id, travelerID, req)
	if err != nil {
		return fail(l, "traveler_update_failed", err)
	}
	return c.JSON(http.StatusOK, traveler)
}

func (h *TravelerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "traveler_delete")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	travelerID, err := paramID(c, "travelerId")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id, travelerID); err != nil {
		return fail(l, "traveler_delete_failed", err)
	}

	l.Info("traveler_deleted", "traveler_id", travelerID)
	return c.NoContent(http.StatusNoContent)
}
