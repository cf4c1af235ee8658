package repository

import (
	"apostila-pix-store/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type WebhookEventRepository interface {
	Record(ctx context.Context, event *model.WebhookEvent) error
}

type webhookEventRepositoryIml struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepositoryIml{db: db}
}

func (r *webhookEventRepositoryIml) Record(ctx context.Context, event *model.WebhookEvent) error {
	if event.ProcessedAt.IsZero() {
		event.ProcessedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}
