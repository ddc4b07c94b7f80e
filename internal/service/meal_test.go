package service

import (
	"context"
	"testing"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"
)

func newMealService(t *testing.T) MealService {
	t.Helper()
	return NewMealService(repository.NewMealRepository(newTestDB(t)))
}

func TestMealCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newMealService(t)

	meal, err := svc.Create(ctx, &dto.CreateMealRequest{
		Name:        "Rajma Chawal",
		Description: "kidney beans over rice",
		Price:       90,
		Category:    "lunch",
		Type:        "veg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !meal.IsAvailable {
		t.Fatalf("new meals default to available")
	}
	if meal.Image != "no-image.jpg" {
		t.Fatalf("image = %q, want placeholder", meal.Image)
	}
	if meal.ID == "" {
		t.Fatalf("meal id not assigned")
	}
}

func TestMealUpdateAppliesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc := newMealService(t)

	meal, err := svc.Create(ctx, &dto.CreateMealRequest{
		Name:        "Chole Bhature",
		Description: "fried bread with chickpeas",
		Price:       80,
		Category:    "breakfast",
		Type:        "veg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	price := int64(100)
	available := false
	updated, err := svc.Update(ctx, meal.ID, &dto.UpdateMealRequest{
		Price:       &price,
		IsAvailable: &available,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Price != 100 || updated.IsAvailable {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Name != meal.Name || updated.Category != model.CategoryBreakfast {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestMealGetAndDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	svc := newMealService(t)

	if _, err := svc.Get(ctx, "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Get err = %v, want not_found", err)
	}
	if err := svc.Delete(ctx, "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Delete err = %v, want not_found", err)
	}

	meal, err := svc.Create(ctx, &dto.CreateMealRequest{
		Name:        "Sambar Vada",
		Description: "lentil doughnuts in sambar",
		Price:       60,
		Category:    "breakfast",
		Type:        "veg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Delete(ctx, meal.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Get(ctx, meal.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Get after delete err = %v, want not_found", err)
	}
}
