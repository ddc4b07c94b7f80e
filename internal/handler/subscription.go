package handler

import (
	"net/http"

	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/middleware"
	"daily-tiffin/internal/service"

	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.subscriptionService.Create(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) GetUserSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()

	subs, err := h.subscriptionService.List(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return respondList(c, len(subs), subs)
}

func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.subscriptionService.Get(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, sub)
}

func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.subscriptionService.Update(ctx, c.Param("id"), middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, sub)
}

func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.subscriptionService.Cancel(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, sub)
}

func (h *SubscriptionHandler) RenewSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.subscriptionService.Renew(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, sub)
}
