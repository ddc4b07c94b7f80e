package repository

import (
	"context"
	"time"

	"daily-tiffin/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByID(ctx context.Context, subscriptionID string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error)
	UpdateDetails(ctx context.Context, subscriptionID string, version int64, fields map[string]interface{}) error
	Cancel(ctx context.Context, subscriptionID string, version int64) error
	Renew(ctx context.Context, subscriptionID string, version int64, start, end time.Time, totalAmount int64) error
	MarkExpired(ctx context.Context, subscriptionID string, version int64) error
	MarkPaymentCompleted(ctx context.Context, tx *gorm.DB, subscriptionID string, version int64) error
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepoImpl) FindByID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("id = ?", subscriptionID).
		First(&sub).
		Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).
		Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}

// conditionalUpdate is the shared version-guarded write every status mutation
// funnels through.
func (r *subscriptionRepoImpl) conditionalUpdate(ctx context.Context, db *gorm.DB, subscriptionID string, version int64, fields map[string]interface{}) error {
	fields["version"] = version + 1
	fields["updated_at"] = time.Now()

	result := db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ? AND version = ?", subscriptionID, version).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleEntity
	}

	return nil
}

func (r *subscriptionRepoImpl) UpdateDetails(ctx context.Context, subscriptionID string, version int64, fields map[string]interface{}) error {
	return r.conditionalUpdate(ctx, r.db, subscriptionID, version, fields)
}

func (r *subscriptionRepoImpl) Cancel(ctx context.Context, subscriptionID string, version int64) error {
	return r.conditionalUpdate(ctx, r.db, subscriptionID, version, map[string]interface{}{
		"status": model.SubscriptionCancelled,
	})
}

func (r *subscriptionRepoImpl) Renew(ctx context.Context, subscriptionID string, version int64, start, end time.Time, totalAmount int64) error {
	return r.conditionalUpdate(ctx, r.db, subscriptionID, version, map[string]interface{}{
		"status":         model.SubscriptionActive,
		"start_date":     start,
		"end_date":       end,
		"total_amount":   totalAmount,
		"payment_status": model.PaymentPending,
	})
}

func (r *subscriptionRepoImpl) MarkExpired(ctx context.Context, subscriptionID string, version int64) error {
	return r.conditionalUpdate(ctx, r.db, subscriptionID, version, map[string]interface{}{
		"status": model.SubscriptionExpired,
	})
}

func (r *subscriptionRepoImpl) MarkPaymentCompleted(ctx context.Context, tx *gorm.DB, subscriptionID string, version int64) error {
	return r.conditionalUpdate(ctx, tx, subscriptionID, version, map[string]interface{}{
		"payment_status": model.PaymentCompleted,
	})
}
