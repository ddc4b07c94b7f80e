package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/pricing"
	"daily-tiffin/internal/repository"

	"github.com/google/uuid"
)

type SubscriptionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubscriptionRequest) (*model.Subscription, error)
	Get(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error)
	List(ctx context.Context, userID string) ([]*model.Subscription, error)
	Update(ctx context.Context, subscriptionID, userID string, req *dto.UpdateSubscriptionRequest) (*model.Subscription, error)
	Cancel(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error)
	Renew(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error)
}

type subscriptionServiceImpl struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	policy           pricing.Policy
	nowFunc          func() time.Time
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	policy pricing.Policy,
) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		policy:           policy,
		nowFunc:          time.Now,
	}
}

func (s *subscriptionServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateSubscriptionRequest) (*model.Subscription, error) {
	planType := model.PlanType(req.PlanType)
	mealType := model.SubscriptionMealType(req.MealType)

	total, err := s.policy.SubscriptionTotal(planType, mealType)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, "%s", err)
	}

	address := req.DeliveryAddress
	if address == "" {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, findErr(err, "user")
		}
		address = user.Address
	}
	if address == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "delivery address is required")
	}

	start := s.nowFunc()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	sub := &model.Subscription{
		ID:              uuid.NewString(),
		UserID:          userID,
		PlanType:        planType,
		MealType:        mealType,
		Preference:      model.MealPreference(req.Preference),
		StartDate:       start,
		EndDate:         endDateFor(planType, start),
		DeliveryAddress: address,
		TotalAmount:     total,
		Status:          model.SubscriptionActive,
		PaymentStatus:   model.PaymentPending,
		Version:         1,
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	return sub, nil
}

func (s *subscriptionServiceImpl) Get(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, findErr(err, "subscription")
	}
	if err := requireOwner(sub.UserID, userID, "subscription"); err != nil {
		return nil, err
	}
	return s.expireIfDue(ctx, sub)
}

func (s *subscriptionServiceImpl) List(ctx context.Context, userID string) ([]*model.Subscription, error) {
	subs, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, sub := range subs {
		expired, err := s.expireIfDue(ctx, sub)
		if err != nil {
			return nil, err
		}
		subs[i] = expired
	}

	return subs, nil
}

// Update mutates only the two fields that stay editable for the life of a
// subscription: preference and delivery address.
func (s *subscriptionServiceImpl) Update(ctx context.Context, subscriptionID, userID string, req *dto.UpdateSubscriptionRequest) (*model.Subscription, error) {
	sub, err := s.Get(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}

	if sub.Status == model.SubscriptionCancelled || sub.Status == model.SubscriptionExpired {
		return nil, apperr.New(apperr.KindTerminalState, "cannot update a subscription that is %s", sub.Status)
	}

	fields := map[string]interface{}{}
	if req.Preference != "" {
		fields["preference"] = req.Preference
	}
	if req.DeliveryAddress != "" {
		fields["delivery_address"] = req.DeliveryAddress
	}

	if len(fields) > 0 {
		if err := s.subscriptionRepo.UpdateDetails(ctx, subscriptionID, sub.Version, fields); err != nil {
			return nil, writeErr(err, "update subscription")
		}
	}

	return s.subscriptionRepo.FindByID(ctx, subscriptionID)
}

func (s *subscriptionServiceImpl) Cancel(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error) {
	sub, err := s.Get(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}

	switch sub.Status {
	case model.SubscriptionCancelled:
		return nil, apperr.New(apperr.KindAlreadyCancelled, "subscription is already cancelled")
	case model.SubscriptionExpired:
		// expired subscriptions can only be renewed
		return nil, apperr.New(apperr.KindAlreadyExpired, "cannot cancel an expired subscription")
	}

	if err := s.subscriptionRepo.Cancel(ctx, subscriptionID, sub.Version); err != nil {
		return nil, writeErr(err, "cancel subscription")
	}

	return s.subscriptionRepo.FindByID(ctx, subscriptionID)
}

// Renew is the only path out of expired or cancelled. Dates restart from now,
// the total is recomputed against the current price book, and payment resets
// to pending. Plan terms never change.
func (s *subscriptionServiceImpl) Renew(ctx context.Context, subscriptionID, userID string) (*model.Subscription, error) {
	sub, err := s.Get(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}

	if sub.Status == model.SubscriptionActive {
		return nil, apperr.New(apperr.KindAlreadyActive, "subscription is already active")
	}

	total, err := s.policy.SubscriptionTotal(sub.PlanType, sub.MealType)
	if err != nil {
		return nil, fmt.Errorf("recompute subscription total: %w", err)
	}

	start := s.nowFunc()
	if err := s.subscriptionRepo.Renew(ctx, subscriptionID, sub.Version, start, endDateFor(sub.PlanType, start), total); err != nil {
		return nil, writeErr(err, "renew subscription")
	}

	return s.subscriptionRepo.FindByID(ctx, subscriptionID)
}

// expireIfDue lazily transitions an overdue active subscription to expired so
// reads and guards always see the true state. No scheduler runs in this
// system.
func (s *subscriptionServiceImpl) expireIfDue(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	if sub.Status != model.SubscriptionActive || !sub.EndDate.Before(s.nowFunc()) {
		return sub, nil
	}

	err := s.subscriptionRepo.MarkExpired(ctx, sub.ID, sub.Version)
	if err != nil && !errors.Is(err, repository.ErrStaleEntity) {
		return nil, fmt.Errorf("expire subscription: %w", err)
	}

	// on a version race someone else already moved the subscription on;
	// either way re-read the current row
	return s.subscriptionRepo.FindByID(ctx, sub.ID)
}

func endDateFor(planType model.PlanType, start time.Time) time.Time {
	if planType == model.PlanMonthly {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 7)
}
