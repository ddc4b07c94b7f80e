package handler

import (
	"net/http"

	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/middleware"
	"daily-tiffin/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	intent, err := h.paymentService.CreateIntent(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, intent)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.paymentService.Verify(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, payment)
}

func (h *PaymentHandler) GetPaymentHistory(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.History(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return respondList(c, len(payments), payments)
}
