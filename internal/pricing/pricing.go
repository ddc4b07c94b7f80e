package pricing

import (
	"fmt"

	"daily-tiffin/internal/model"

	"github.com/shopspring/decimal"
)

// Policy holds the subscription price book. The numbers are business data, not
// logic: production overrides them through PRICING_* env vars.
type Policy struct {
	BreakfastPrice   int64
	LunchDinnerPrice int64
	AllMealsPrice    int64

	WeeklyDays   int64
	MonthlyDays  int64
	WeeklyRate   string // price multiplier, e.g. "0.90" for a 10% discount
	MonthlyRate  string
}

func DefaultPolicy() Policy {
	return Policy{
		BreakfastPrice:   85,
		LunchDinnerPrice: 95,
		AllMealsPrice:    250,
		WeeklyDays:       7,
		MonthlyDays:      30,
		WeeklyRate:       "0.90",
		MonthlyRate:      "0.80",
	}
}

// Line is one order line item with the unit price snapshotted at order time.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// OrderTotal sums unit price times quantity over all lines. Pure; the caller
// has already validated that every meal exists and is available.
func OrderTotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// BasePrice returns the flat daily price for a subscription meal type.
func (p Policy) BasePrice(mealType model.SubscriptionMealType) (int64, error) {
	switch mealType {
	case model.MealTypeBreakfast:
		return p.BreakfastPrice, nil
	case model.MealTypeLunch, model.MealTypeDinner:
		return p.LunchDinnerPrice, nil
	case model.MealTypeAll:
		return p.AllMealsPrice, nil
	}
	return 0, fmt.Errorf("unknown meal type %q", mealType)
}

// SubscriptionTotal computes round-half-up(days × basePrice × rate) for the
// plan. Deterministic; evaluated once at creation and again on renewal.
func (p Policy) SubscriptionTotal(planType model.PlanType, mealType model.SubscriptionMealType) (int64, error) {
	base, err := p.BasePrice(mealType)
	if err != nil {
		return 0, err
	}

	var days int64
	var rate string
	switch planType {
	case model.PlanWeekly:
		days, rate = p.WeeklyDays, p.WeeklyRate
	case model.PlanMonthly:
		days, rate = p.MonthlyDays, p.MonthlyRate
	default:
		return 0, fmt.Errorf("unknown plan type %q", planType)
	}

	mult, err := decimal.NewFromString(rate)
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", rate, err)
	}

	total := decimal.NewFromInt(days).
		Mul(decimal.NewFromInt(base)).
		Mul(mult).
		Round(0)

	return total.IntPart(), nil
}
