package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/model"
)

// WebhookLogRepository is write-only from the application's point of view;
// the audit trail is read by operators, not by code.
type WebhookLogRepository interface {
	Create(ctx context.Context, entry *model.WebhookLog) error
}

type webhookLogRepoImpl struct {
	db *gorm.DB
}

func NewWebhookLogRepository(db *gorm.DB) WebhookLogRepository {
	return &webhookLogRepoImpl{db: db}
}

func (r *webhookLogRepoImpl) Create(ctx context.Context, entry *model.WebhookLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
