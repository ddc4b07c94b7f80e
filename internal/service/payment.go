package service

import (
	"context"
	"fmt"
	"time"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypeOrder        = "order"
	PaymentTypeSubscription = "subscription"

	defaultPaymentMethod = "card"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, req *dto.CreatePaymentIntentRequest) (*dto.PaymentIntentResponse, error)
	Verify(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*model.Payment, error)
	History(ctx context.Context, userID string) ([]*model.Payment, error)
}

type paymentServiceImpl struct {
	db               *gorm.DB
	orderRepo        repository.OrderRepository
	subscriptionRepo repository.SubscriptionRepository
	paymentRepo      repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	subscriptionRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		orderRepo:        orderRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
	}
}

// CreateIntent validates ownership and resolves the amount server-side, then
// hands back an opaque mock-gateway handle. Nothing is persisted here.
func (s *paymentServiceImpl) CreateIntent(ctx context.Context, userID string, req *dto.CreatePaymentIntentRequest) (*dto.PaymentIntentResponse, error) {
	amount, err := s.resolveTarget(ctx, userID, req.Type, req.ID)
	if err != nil {
		return nil, err
	}

	intentID := "pi_" + uuid.NewString()
	return &dto.PaymentIntentResponse{
		ClientSecret: "mock_secret_" + intentID,
		Amount:       amount,
	}, nil
}

// Verify records the completed transaction in the ledger and marks the target
// paid, as one transaction. The amount always comes from the target, never
// from the caller.
func (s *paymentServiceImpl) Verify(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*model.Payment, error) {
	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	exists, err := s.paymentRepo.ExistsByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("check transaction: %w", err)
	}
	if exists {
		return nil, apperr.New(apperr.KindConflict, "transaction %s is already recorded", req.TransactionID)
	}

	switch req.Type {
	case PaymentTypeOrder:
		return s.verifyOrderPayment(ctx, userID, req.ID, req.TransactionID, method)
	case PaymentTypeSubscription:
		return s.verifySubscriptionPayment(ctx, userID, req.ID, req.TransactionID, method)
	}
	return nil, apperr.New(apperr.KindInvalidInput, "invalid payment type %q, must be order or subscription", req.Type)
}

func (s *paymentServiceImpl) History(ctx context.Context, userID string) ([]*model.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

func (s *paymentServiceImpl) verifyOrderPayment(ctx context.Context, userID, orderID, transactionID, method string) (*model.Payment, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, findErr(err, "order")
	}
	if err := requireOwner(order.UserID, userID, "order"); err != nil {
		return nil, err
	}

	payment, err := newPayment(userID, &order.ID, nil, order.TotalAmount, method, transactionID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}
		return s.orderRepo.MarkPaymentCompleted(ctx, tx, order.ID, order.Version, repository.PaymentDetails{
			TransactionID: transactionID,
			Method:        method,
			Amount:        order.TotalAmount,
		})
	})
	if err != nil {
		return nil, writeErr(err, "record order payment")
	}

	return payment, nil
}

func (s *paymentServiceImpl) verifySubscriptionPayment(ctx context.Context, userID, subscriptionID, transactionID, method string) (*model.Payment, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, findErr(err, "subscription")
	}
	if err := requireOwner(sub.UserID, userID, "subscription"); err != nil {
		return nil, err
	}

	payment, err := newPayment(userID, nil, &sub.ID, sub.TotalAmount, method, transactionID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}
		return s.subscriptionRepo.MarkPaymentCompleted(ctx, tx, sub.ID, sub.Version)
	})
	if err != nil {
		return nil, writeErr(err, "record subscription payment")
	}

	return payment, nil
}

func (s *paymentServiceImpl) resolveTarget(ctx context.Context, userID, paymentType, targetID string) (int64, error) {
	switch paymentType {
	case PaymentTypeOrder:
		order, err := s.orderRepo.FindByID(ctx, targetID)
		if err != nil {
			return 0, findErr(err, "order")
		}
		if err := requireOwner(order.UserID, userID, "order"); err != nil {
			return 0, err
		}
		return order.TotalAmount, nil
	case PaymentTypeSubscription:
		sub, err := s.subscriptionRepo.FindByID(ctx, targetID)
		if err != nil {
			return 0, findErr(err, "subscription")
		}
		if err := requireOwner(sub.UserID, userID, "subscription"); err != nil {
			return 0, err
		}
		return sub.TotalAmount, nil
	}
	return 0, apperr.New(apperr.KindInvalidInput, "invalid payment type %q, must be order or subscription", paymentType)
}

// newPayment enforces the ledger invariant: a payment references exactly one
// of order or subscription.
func newPayment(userID string, orderID, subscriptionID *string, amount int64, method, transactionID string) (*model.Payment, error) {
	if orderID == nil && subscriptionID == nil {
		return nil, apperr.New(apperr.KindMissingReference, "payment must be associated with either an order or a subscription")
	}
	if orderID != nil && subscriptionID != nil {
		return nil, apperr.New(apperr.KindMissingReference, "payment cannot reference both an order and a subscription")
	}

	return &model.Payment{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrderID:        orderID,
		SubscriptionID: subscriptionID,
		Amount:         amount,
		PaymentMethod:  method,
		TransactionID:  transactionID,
		Status:         model.PaymentCompleted,
		Timestamp:      time.Now(),
	}, nil
}
