package repositories

import (
	"context"
	"errors"

	"martylabs/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IConversationRepository interface {
	Create(ctx context.Context, conv *db_models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]db_models.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AppendMessage(ctx context.Context, msg *db_models.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]db_models.Message, error)
}

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) IConversationRepository {
	return &ConversationRepository{db: db}
}

func (c *ConversationRepository) Create(ctx context.Context, conv *db_models.Conversation) error {
	return c.db.WithContext(ctx).Create(conv).Error
}

func (c *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	var conv db_models.Conversation
	err := c.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (c *ConversationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]db_models.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var convs []db_models.Conversation
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// Delete removes a conversation and its messages in one transaction.
func (c *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&db_models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Conversation{}, "id = ?", id).Error
	})
}

func (c *ConversationRepository) AppendMessage(ctx context.Context, msg *db_models.Message) error {
	return c.db.WithContext(ctx).Create(msg).Error
}

func (c *ConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]db_models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var msgs []db_models.Message
	err := c.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
