package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"daily-tiffin/internal/model"
	"daily-tiffin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Meal{},
		&model.Order{},
		&model.OrderItem{},
		&model.Subscription{},
		&model.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, address string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Address:      address,
		Role:         model.RoleUser,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return user
}

func seedMeal(t *testing.T, db *gorm.DB, name string, price int64, available bool) *model.Meal {
	t.Helper()

	meal := &model.Meal{
		ID:          uuid.NewString(),
		Name:        name,
		Description: "test meal",
		Price:       price,
		Category:    model.CategoryLunch,
		Type:        model.PreferenceVeg,
		Image:       "no-image.jpg",
		IsAvailable: available,
	}
	if err := repository.NewMealRepository(db).Create(context.Background(), meal); err != nil {
		t.Fatalf("seed meal: %v", err)
	}

	return meal
}
