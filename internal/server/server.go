package server

import (
	"errors"
	"fmt"
	"net/http"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/handler"
	"daily-tiffin/internal/middleware"
	"daily-tiffin/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo                *echo.Echo
	jwtSecret           string
	authHandler         *handler.AuthHandler
	mealHandler         *handler.MealHandler
	orderHandler        *handler.OrderHandler
	subscriptionHandler *handler.SubscriptionHandler
	paymentHandler      *handler.PaymentHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewServer(
	jwtSecret string,
	userService service.UserService,
	mealService service.MealService,
	orderService service.OrderService,
	subscriptionService service.SubscriptionService,
	paymentService service.PaymentService,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = httpErrorHandler()

	s := &Server{
		echo:                e,
		jwtSecret:           jwtSecret,
		authHandler:         handler.NewAuthHandler(userService),
		mealHandler:         handler.NewMealHandler(mealService),
		orderHandler:        handler.NewOrderHandler(orderService),
		subscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
		paymentHandler:      handler.NewPaymentHandler(paymentService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	authed := middleware.Auth(s.jwtSecret)
	manager := middleware.RequireManager()

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.GET("/me", s.authHandler.GetMe, authed)
	auth.PUT("/updateprofile", s.authHandler.UpdateProfile, authed)

	// -------- meals (reads public, writes manager-only) --------
	meals := api.Group("/meals")
	meals.GET("", s.mealHandler.ListMeals)
	meals.GET("/:id", s.mealHandler.GetMeal)
	meals.POST("", s.mealHandler.CreateMeal, authed, manager)
	meals.PUT("/:id", s.mealHandler.UpdateMeal, authed, manager)
	meals.DELETE("/:id", s.mealHandler.DeleteMeal, authed, manager)

	// -------- orders --------
	orders := api.Group("/orders", authed)
	orders.POST("", s.orderHandler.CreateOrder)
	orders.GET("", s.orderHandler.GetUserOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.PUT("/:id/status", s.orderHandler.UpdateOrderStatus)
	orders.PUT("/:id/cancel", s.orderHandler.CancelOrder)

	// -------- subscriptions --------
	subs := api.Group("/subscriptions", authed)
	subs.POST("", s.subscriptionHandler.CreateSubscription)
	subs.GET("", s.subscriptionHandler.GetUserSubscriptions)
	subs.GET("/:id", s.subscriptionHandler.GetSubscription)
	subs.PUT("/:id", s.subscriptionHandler.UpdateSubscription)
	subs.PUT("/:id/cancel", s.subscriptionHandler.CancelSubscription)
	subs.POST("/:id/renew", s.subscriptionHandler.RenewSubscription)

	// -------- payments --------
	payments := api.Group("/payments", authed)
	payments.POST("/create", s.paymentHandler.CreatePaymentIntent)
	payments.POST("/verify", s.paymentHandler.VerifyPayment)
	payments.GET("/history", s.paymentHandler.GetPaymentHistory)
}

// httpErrorHandler keeps the wire envelope uniform: business errors map to a
// status by kind, everything unclassified is a 500 with no internals leaked.
func httpErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Server Error"

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			code = statusForKind(appErr.Kind)
			msg = appErr.Msg
		case errors.As(err, &httpErr):
			code = httpErr.Code
			msg = fmt.Sprintf("%v", httpErr.Message)
		default:
			c.Logger().Error(err)
		}

		_ = c.JSON(code, map[string]interface{}{
			"success": false,
			"error":   msg,
		})
	}
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
