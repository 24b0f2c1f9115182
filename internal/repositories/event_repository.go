package repositories

import (
	"context"
	"errors"
	"time"

	"martylabs/internal/models/db_models"
	"martylabs/pkg/utils"

	"gorm.io/gorm"
)

type IEventRepository interface {
	AppendUsage(ctx context.Context, event *db_models.UsageEvent) error
	AppendBilling(ctx context.Context, event *db_models.BillingEvent) error
	ListBilling(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error)

	// MarkWebhookProcessed claims a provider event id. Returns
	// ErrDuplicateEvent when the id was already claimed, which callers
	// treat as "acknowledge and skip".
	MarkWebhookProcessed(ctx context.Context, provider, eventID string) error
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) IEventRepository {
	return &EventRepository{db: db}
}

func (e *EventRepository) AppendUsage(ctx context.Context, event *db_models.UsageEvent) error {
	return e.db.WithContext(ctx).Create(event).Error
}

func (e *EventRepository) AppendBilling(ctx context.Context, event *db_models.BillingEvent) error {
	return e.db.WithContext(ctx).Create(event).Error
}

func (e *EventRepository) ListBilling(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var events []db_models.BillingEvent
	err := e.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (e *EventRepository) MarkWebhookProcessed(ctx context.Context, provider, eventID string) error {
	event := &db_models.WebhookEvent{
		Provider:    provider,
		EventID:     eventID,
		ProcessedAt: time.Now().Unix(),
	}
	if err := e.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrDuplicateEvent
		}
		return err
	}
	return nil
}
