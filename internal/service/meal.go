package service

import (
	"context"
	"fmt"

	"daily-tiffin/internal/dto"
	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"

	"github.com/google/uuid"
)

type MealService interface {
	List(ctx context.Context, q repository.ListQuery) ([]*model.Meal, int64, error)
	Get(ctx context.Context, mealID string) (*model.Meal, error)
	Create(ctx context.Context, req *dto.CreateMealRequest) (*model.Meal, error)
	Update(ctx context.Context, mealID string, req *dto.UpdateMealRequest) (*model.Meal, error)
	Delete(ctx context.Context, mealID string) error
}

type mealServiceImpl struct {
	mealRepo repository.MealRepository
}

func NewMealService(mealRepo repository.MealRepository) MealService {
	return &mealServiceImpl{
		mealRepo: mealRepo,
	}
}

func (s *mealServiceImpl) List(ctx context.Context, q repository.ListQuery) ([]*model.Meal, int64, error) {
	return s.mealRepo.List(ctx, q)
}

func (s *mealServiceImpl) Get(ctx context.Context, mealID string) (*model.Meal, error) {
	meal, err := s.mealRepo.FindByID(ctx, mealID)
	if err != nil {
		return nil, findErr(err, "meal")
	}
	return meal, nil
}

func (s *mealServiceImpl) Create(ctx context.Context, req *dto.CreateMealRequest) (*model.Meal, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	image := req.Image
	if image == "" {
		image = "no-image.jpg"
	}

	meal := &model.Meal{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    model.MealCategory(req.Category),
		Type:        model.MealPreference(req.Type),
		Image:       image,
		IsAvailable: available,
	}
	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}

	return meal, nil
}

// Update edits availability, price and descriptive fields. Price edits do not
// touch existing orders: their totals are snapshots.
func (s *mealServiceImpl) Update(ctx context.Context, mealID string, req *dto.UpdateMealRequest) (*model.Meal, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}

	if len(fields) > 0 {
		if err := s.mealRepo.Update(ctx, mealID, fields); err != nil {
			return nil, findErr(err, "meal")
		}
	}

	return s.Get(ctx, mealID)
}

func (s *mealServiceImpl) Delete(ctx context.Context, mealID string) error {
	if err := s.mealRepo.Delete(ctx, mealID); err != nil {
		return findErr(err, "meal")
	}
	return nil
}
