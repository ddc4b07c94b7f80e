package handler

import (
	"net/http"

	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/middleware"
	"daily-tiffin/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	userService service.UserService
}

func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.userService.Register(ctx, req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, dto.AuthResponse{Token: token})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.AuthResponse{Token: token})
}

func (h *AuthHandler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.GetMe(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.UpdateProfile(ctx, middleware.UserID(c), req.Name, req.Address)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user)
}
