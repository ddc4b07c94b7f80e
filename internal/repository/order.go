package repository

import (
	"context"
	"time"

	"daily-tiffin/internal/model"

	"gorm.io/gorm"
)

// PaymentDetails echoes the ledger entry onto the order row when a payment
// completes.
type PaymentDetails struct {
	TransactionID string
	Method        string
	Amount        int64
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, version int64, status model.OrderStatus) error
	MarkPaymentCompleted(ctx context.Context, tx *gorm.DB, orderID string, version int64, details PaymentDetails) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).
		Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus is a version-guarded write: it only lands if nobody mutated the
// order since the caller read version.
func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID string, version int64, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND version = ?", orderID, version).
		Updates(map[string]interface{}{
			"status":     status,
			"version":    version + 1,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleEntity
	}

	return nil
}

func (r *orderRepoImpl) MarkPaymentCompleted(ctx context.Context, tx *gorm.DB, orderID string, version int64, details PaymentDetails) error {
	result := tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND version = ?", orderID, version).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentCompleted,
			"payment_id":     details.TransactionID,
			"payment_method": details.Method,
			"payment_amount": details.Amount,
			"version":        version + 1,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleEntity
	}

	return nil
}
