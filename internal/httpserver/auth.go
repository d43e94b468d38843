package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("register_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		return fail(l, "register_failed", err)
	}

	l.Info("register_successful", "user_id", user.ID)
	c.Response().Header().Set(echo.HeaderLocation, "/api/login")
	return c.JSON(http.StatusCreated, transport.UserResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return fail(l, "refresh_failed", err)
	}

	l.Info("refresh_successful")
	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	id, err := callerIdentity(c)
	if err != nil {
		return err
	}

	// The body may carry a refresh token for wire compatibility, but
	// revocation is keyed on the caller, so it is bound and ignored.
	var req transport.LogoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Logout(ctx, id); err != nil {
		return fail(l, "logout_failed", err)
	}

	l.Info("logout_successful", "user_id", id.UserID)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
