package pricing

import (
	"testing"

	"daily-tiffin/internal/model"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  int64
	}{
		{"no lines", nil, 0},
		{"single line", []Line{{UnitPrice: 120, Quantity: 2}}, 240},
		{"multiple lines", []Line{{UnitPrice: 85, Quantity: 1}, {UnitPrice: 95, Quantity: 3}}, 370},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderTotal(tt.lines); got != tt.want {
				t.Fatalf("OrderTotal = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSubscriptionTotal(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		plan     model.PlanType
		mealType model.SubscriptionMealType
		want     int64
	}{
		// round(7 × 250 × 0.90) = 1575
		{"weekly all meals", model.PlanWeekly, model.MealTypeAll, 1575},
		// round(30 × 85 × 0.80) = 2040
		{"monthly breakfast", model.PlanMonthly, model.MealTypeBreakfast, 2040},
		// 535.5 rounds half-up to 536
		{"weekly breakfast", model.PlanWeekly, model.MealTypeBreakfast, 536},
		// 598.5 rounds half-up to 599
		{"weekly lunch", model.PlanWeekly, model.MealTypeLunch, 599},
		{"weekly dinner", model.PlanWeekly, model.MealTypeDinner, 599},
		{"monthly lunch", model.PlanMonthly, model.MealTypeLunch, 2280},
		{"monthly all meals", model.PlanMonthly, model.MealTypeAll, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.SubscriptionTotal(tt.plan, tt.mealType)
			if err != nil {
				t.Fatalf("SubscriptionTotal error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SubscriptionTotal(%s, %s) = %d, want %d", tt.plan, tt.mealType, got, tt.want)
			}
		})
	}
}

func TestSubscriptionTotalRejectsUnknownInputs(t *testing.T) {
	policy := DefaultPolicy()

	if _, err := policy.SubscriptionTotal("yearly", model.MealTypeAll); err == nil {
		t.Fatal("expected error for unknown plan type")
	}
	if _, err := policy.SubscriptionTotal(model.PlanWeekly, "brunch"); err == nil {
		t.Fatal("expected error for unknown meal type")
	}
}

func TestSubscriptionTotalDeterministic(t *testing.T) {
	policy := DefaultPolicy()

	first, err := policy.SubscriptionTotal(model.PlanMonthly, model.MealTypeDinner)
	if err != nil {
		t.Fatalf("SubscriptionTotal error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := policy.SubscriptionTotal(model.PlanMonthly, model.MealTypeDinner)
		if err != nil {
			t.Fatalf("SubscriptionTotal error: %v", err)
		}
		if again != first {
			t.Fatalf("SubscriptionTotal not deterministic: %d vs %d", again, first)
		}
	}
}
