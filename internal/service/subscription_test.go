package service

import (
	"context"
	"testing"
	"time"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/pricing"
	"daily-tiffin/internal/repository"

	"gorm.io/gorm"
)

func newSubscriptionService(t *testing.T) (SubscriptionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		pricing.DefaultPolicy(),
	)
	return svc, db
}

func TestSubscriptionCreatePricesPlan(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")

	cases := []struct {
		planType string
		mealType string
		want     int64
	}{
		{"weekly", "all", 1575},
		{"monthly", "breakfast", 2040},
		{"weekly", "lunch", 599},
		{"monthly", "all", 6000},
	}
	for _, tc := range cases {
		sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
			PlanType:        tc.planType,
			MealType:        tc.mealType,
			Preference:      "veg",
			DeliveryAddress: "X",
		})
		if err != nil {
			t.Fatalf("Create(%s,%s) error: %v", tc.planType, tc.mealType, err)
		}
		if sub.TotalAmount != tc.want {
			t.Fatalf("Create(%s,%s) total = %d, want %d", tc.planType, tc.mealType, sub.TotalAmount, tc.want)
		}
		if sub.Status != model.SubscriptionActive || sub.PaymentStatus != model.PaymentPending {
			t.Fatalf("unexpected initial state: %s/%s", sub.Status, sub.PaymentStatus)
		}
	}
}

func TestSubscriptionCreateDerivesEndDate(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	weekly, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "lunch",
		Preference:      "veg",
		StartDate:       &start,
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create weekly error: %v", err)
	}
	if !weekly.EndDate.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("weekly end = %v, want start+7d", weekly.EndDate)
	}

	monthly, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "monthly",
		MealType:        "dinner",
		Preference:      "non-veg",
		StartDate:       &start,
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create monthly error: %v", err)
	}
	if !monthly.EndDate.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("monthly end = %v, want start+1mo", monthly.EndDate)
	}
}

func TestSubscriptionUpdateChangesOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "all",
		Preference:      "veg",
		DeliveryAddress: "old address",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := svc.Update(ctx, sub.ID, user.ID, &dto.UpdateSubscriptionRequest{
		Preference:      "non-veg",
		DeliveryAddress: "new address",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Preference != model.PreferenceNonVeg || updated.DeliveryAddress != "new address" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.PlanType != sub.PlanType || updated.MealType != sub.MealType || updated.TotalAmount != sub.TotalAmount {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

func TestSubscriptionUpdateRejectsTerminalStates(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "lunch",
		Preference:      "veg",
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Cancel(ctx, sub.ID, user.ID); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	_, err = svc.Update(ctx, sub.ID, user.ID, &dto.UpdateSubscriptionRequest{Preference: "non-veg"})
	if apperr.KindOf(err) != apperr.KindTerminalState {
		t.Fatalf("err = %v, want terminal_state", err)
	}
}

func TestSubscriptionCancelGuards(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "breakfast",
		Preference:      "veg",
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	cancelled, err := svc.Cancel(ctx, sub.ID, user.ID)
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != model.SubscriptionCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := svc.Cancel(ctx, sub.ID, user.ID); apperr.KindOf(err) != apperr.KindAlreadyCancelled {
		t.Fatalf("second cancel err = %v, want already_cancelled", err)
	}
}

func TestSubscriptionExpiresLazilyOnRead(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")
	past := time.Now().AddDate(0, 0, -10)

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "lunch",
		Preference:      "veg",
		StartDate:       &past,
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sub.Status != model.SubscriptionActive {
		t.Fatalf("status at create = %s, want active", sub.Status)
	}

	got, err := svc.Get(ctx, sub.ID, user.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Status != model.SubscriptionExpired {
		t.Fatalf("status after read = %s, want expired", got.Status)
	}

	// expired subscriptions cannot be cancelled, only renewed
	if _, err := svc.Cancel(ctx, sub.ID, user.ID); apperr.KindOf(err) != apperr.KindAlreadyExpired {
		t.Fatalf("cancel err = %v, want already_expired", err)
	}
}

func TestSubscriptionRenewRestartsPlan(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "")
	past := time.Now().AddDate(0, 0, -10)

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "weekly",
		MealType:        "all",
		Preference:      "veg",
		StartDate:       &past,
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	renewed, err := svc.Renew(ctx, sub.ID, user.ID)
	if err != nil {
		t.Fatalf("Renew error: %v", err)
	}
	if renewed.Status != model.SubscriptionActive {
		t.Fatalf("status = %s, want active", renewed.Status)
	}
	if renewed.PaymentStatus != model.PaymentPending {
		t.Fatalf("paymentStatus = %s, want pending", renewed.PaymentStatus)
	}
	if !renewed.StartDate.After(past) {
		t.Fatalf("start date not advanced: %v", renewed.StartDate)
	}
	if !renewed.EndDate.Equal(renewed.StartDate.AddDate(0, 0, 7)) {
		t.Fatalf("end = %v, want start+7d", renewed.EndDate)
	}
	if renewed.TotalAmount != 1575 {
		t.Fatalf("total = %d, want 1575", renewed.TotalAmount)
	}

	if _, err := svc.Renew(ctx, sub.ID, user.ID); apperr.KindOf(err) != apperr.KindAlreadyActive {
		t.Fatalf("renew active err = %v, want already_active", err)
	}
}

func TestSubscriptionOwnershipGuard(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	owner := seedUser(t, db, "")
	stranger := seedUser(t, db, "")

	sub, err := svc.Create(ctx, owner.ID, &dto.CreateSubscriptionRequest{
		PlanType:        "monthly",
		MealType:        "all",
		Preference:      "veg",
		DeliveryAddress: "X",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Get(ctx, sub.ID, stranger.ID); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("Get err = %v, want unauthorized", err)
	}
	if _, err := svc.Cancel(ctx, sub.ID, stranger.ID); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("Cancel err = %v, want unauthorized", err)
	}
	if _, err := svc.Renew(ctx, sub.ID, stranger.ID); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("Renew err = %v, want unauthorized", err)
	}
}

func TestSubscriptionCreateDefaultsToProfileAddress(t *testing.T) {
	ctx := context.Background()
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "7 Tiffin Road")

	sub, err := svc.Create(ctx, user.ID, &dto.CreateSubscriptionRequest{
		PlanType:   "weekly",
		MealType:   "dinner",
		Preference: "veg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sub.DeliveryAddress != "7 Tiffin Road" {
		t.Fatalf("address = %q, want profile address", sub.DeliveryAddress)
	}

	bare := seedUser(t, db, "")
	_, err = svc.Create(ctx, bare.ID, &dto.CreateSubscriptionRequest{
		PlanType:   "weekly",
		MealType:   "dinner",
		Preference: "veg",
	})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("err = %v, want invalid_input", err)
	}
}
