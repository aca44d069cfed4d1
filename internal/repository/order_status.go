package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/model"
)

type OrderStatusRepository interface {
	Create(ctx context.Context, status *model.OrderStatus) error
	FindByCollectID(ctx context.Context, collectID string) (*model.OrderStatus, error)
	// UpdateByCollectID overwrites the settlement fields of an existing row.
	// It is not an upsert: with no matching row it is a no-op.
	UpdateByCollectID(ctx context.Context, collectID string, update *model.OrderStatus) error
}

type orderStatusRepoImpl struct {
	db *gorm.DB
}

func NewOrderStatusRepository(db *gorm.DB) OrderStatusRepository {
	return &orderStatusRepoImpl{
		db: db,
	}
}

func (r *orderStatusRepoImpl) Create(ctx context.Context, status *model.OrderStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *orderStatusRepoImpl) FindByCollectID(ctx context.Context, collectID string) (*model.OrderStatus, error) {
	var status model.OrderStatus
	err := r.db.WithContext(ctx).
		Where("collect_id = ?", collectID).
		First(&status).Error

	if err != nil {
		return nil, err
	}

	return &status, nil
}

func (r *orderStatusRepoImpl) UpdateByCollectID(ctx context.Context, collectID string, update *model.OrderStatus) error {
	// Updates via a map so zero values overwrite too; absent optional
	// callback fields must clear what an earlier delivery wrote.
	return r.db.WithContext(ctx).Model(&model.OrderStatus{}).
		Where("collect_id = ?", collectID).
		Updates(map[string]interface{}{
			"transaction_amount": update.TransactionAmount,
			"payment_mode":       update.PaymentMode,
			"payment_details":    update.PaymentDetails,
			"bank_reference":     update.BankReference,
			"payment_message":    update.PaymentMessage,
			"status":             update.Status,
			"error_message":      update.ErrorMessage,
			"payment_time":       update.PaymentTime,
			"updated_at":         time.Now().UTC(),
		}).Error
}
