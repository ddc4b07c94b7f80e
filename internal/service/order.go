package service

import (
	"context"
	"fmt"
	"time"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/pricing"
	"daily-tiffin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, orderID, userID string) (*model.Order, error)
	List(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, userID string) (*model.Order, error)
	Cancel(ctx context.Context, orderID, userID string) (*model.Order, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	mealRepo  repository.MealRepository
	userRepo  repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	mealRepo repository.MealRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
		mealRepo:  mealRepo,
		userRepo:  userRepo,
	}
}

// Create validates every line item against the catalog, snapshots unit prices
// and writes the order and its items in one transaction. Any invalid item
// aborts the whole order.
func (s *orderServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	address, err := s.deliveryAddress(ctx, userID, req.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	mealIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperr.New(apperr.KindInvalidInput, "quantity must be at least 1")
		}
		mealIDs[i] = item.Meal
	}

	meals, err := s.mealRepo.FindMany(ctx, mealIDs)
	if err != nil {
		return nil, fmt.Errorf("find meals: %w", err)
	}
	mealsByID := make(map[string]*model.Meal, len(meals))
	for _, meal := range meals {
		mealsByID[meal.ID] = meal
	}

	orderID := uuid.NewString()
	lines := make([]pricing.Line, len(req.Items))
	orderItems := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		meal, ok := mealsByID[item.Meal]
		if !ok {
			return nil, apperr.New(apperr.KindNotFound, "meal with id %s not found", item.Meal)
		}
		if !meal.IsAvailable {
			return nil, apperr.New(apperr.KindMealUnavailable, "meal %s is not available", meal.Name)
		}

		lines[i] = pricing.Line{UnitPrice: meal.Price, Quantity: item.Quantity}
		orderItems[i] = &model.OrderItem{
			OrderID:   orderID,
			MealID:    meal.ID,
			Quantity:  item.Quantity,
			UnitPrice: meal.Price,
		}
	}

	order := &model.Order{
		ID:              orderID,
		UserID:          userID,
		TotalAmount:     pricing.OrderTotal(lines),
		Status:          model.OrderPending,
		PaymentStatus:   model.PaymentPending,
		DeliveryAddress: address,
		OrderDate:       time.Now(),
		Version:         1,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, findErr(err, "order")
	}
	if err := requireOwner(order.UserID, userID, "order"); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) List(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// UpdateStatus sets any valid status on a non-terminal order. There is no
// transition graph beyond the terminal guard: pending may jump straight to
// delivered.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, userID string) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperr.New(apperr.KindInvalidInput, "invalid order status %q", status)
	}

	order, err := s.Get(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, apperr.New(apperr.KindTerminalState, "order is already %s", order.Status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, order.Version, status); err != nil {
		return nil, writeErr(err, "update order status")
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) Cancel(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := s.Get(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.OrderDelivered:
		return nil, apperr.New(apperr.KindAlreadyDelivered, "cannot cancel an order that has been delivered")
	case model.OrderCancelled:
		return nil, apperr.New(apperr.KindAlreadyCancelled, "order is already cancelled")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, order.Version, model.OrderCancelled); err != nil {
		return nil, writeErr(err, "cancel order")
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) deliveryAddress(ctx context.Context, userID, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", findErr(err, "user")
	}
	if user.Address == "" {
		return "", apperr.New(apperr.KindInvalidInput, "delivery address is required")
	}

	return user.Address, nil
}
