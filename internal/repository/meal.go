package repository

import (
	"context"

	"daily-tiffin/internal/model"

	"gorm.io/gorm"
)

// ListQuery is the declarative query for meal listings: typed filters, a sort
// expression and page-based pagination.
type ListQuery struct {
	Filters []Filter
	Sort    string
	Page    int
	Limit   int
}

type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	FindByID(ctx context.Context, mealID string) (*model.Meal, error)
	FindMany(ctx context.Context, mealIDs []string) ([]*model.Meal, error)
	List(ctx context.Context, q ListQuery) ([]*model.Meal, int64, error)
	Update(ctx context.Context, mealID string, fields map[string]interface{}) error
	Delete(ctx context.Context, mealID string) error
}

type mealRepoImpl struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepoImpl{
		db: db,
	}
}

var mealQueryFields = map[string]struct{}{
	"name":         {},
	"price":        {},
	"category":     {},
	"type":         {},
	"is_available": {},
	"created_at":   {},
}

func (r *mealRepoImpl) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepoImpl) FindByID(ctx context.Context, mealID string) (*model.Meal, error) {
	var meal model.Meal
	err := r.db.WithContext(ctx).
		Where("id = ?", mealID).
		First(&meal).Error

	if err != nil {
		return nil, err
	}

	return &meal, nil
}

func (r *mealRepoImpl) FindMany(ctx context.Context, mealIDs []string) ([]*model.Meal, error) {
	var meals []*model.Meal
	err := r.db.WithContext(ctx).
		Where("id IN ?", mealIDs).
		Find(&meals).
		Error

	if err != nil {
		return nil, err
	}

	return meals, nil
}

func (r *mealRepoImpl) List(ctx context.Context, q ListQuery) ([]*model.Meal, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Meal{})

	db, err := applyFilters(db, mealQueryFields, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := q.Sort
	if sort == "" {
		sort = "-created_at"
	}
	db, err = applySort(db, mealQueryFields, sort)
	if err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	var meals []*model.Meal
	err = db.Offset((page - 1) * limit).
		Limit(limit).
		Find(&meals).
		Error

	if err != nil {
		return nil, 0, err
	}

	return meals, total, nil
}

func (r *mealRepoImpl) Update(ctx context.Context, mealID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Meal{}).
		Where("id = ?", mealID).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *mealRepoImpl) Delete(ctx context.Context, mealID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", mealID).
		Delete(&model.Meal{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
