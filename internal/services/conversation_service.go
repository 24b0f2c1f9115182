package services

import (
	"context"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
)

type ConversationServiceInterface interface {
	Start(ctx context.Context, userID string, req request_models.StartConversationRequest) (*response_models.ConversationResponse, error)
	List(ctx context.Context, userID string, limit int) ([]response_models.ConversationResponse, error)
	AppendMessage(ctx context.Context, userID string, conversationID uuid.UUID, req request_models.AppendMessageRequest) (*response_models.MessageResponse, error)
	ListMessages(ctx context.Context, userID string, conversationID uuid.UUID, limit int) ([]response_models.MessageResponse, error)
	Delete(ctx context.Context, userID string, conversationID uuid.UUID) error
}

type ConversationService struct {
	convRepo repositories.IConversationRepository
	flowRepo repositories.IFlowRepository
}

func NewConversationService(
	convRepo repositories.IConversationRepository,
	flowRepo repositories.IFlowRepository,
) ConversationServiceInterface {
	return &ConversationService{
		convRepo: convRepo,
		flowRepo: flowRepo,
	}
}

func (c *ConversationService) Start(ctx context.Context, userID string, req request_models.StartConversationRequest) (*response_models.ConversationResponse, error) {
	flow, err := c.flowRepo.GetByID(ctx, req.FlowID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if flow == nil {
		return nil, utils.ErrRecordNotFound
	}

	title := req.Title
	if title == "" {
		title = flow.Title
	}

	conv := &db_models.Conversation{
		UserID: userID,
		FlowID: flow.ID,
		Title:  title,
	}
	if err := c.convRepo.Create(ctx, conv); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ConversationResponse{
		ID:        conv.ID,
		FlowID:    conv.FlowID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
	}, nil
}

func (c *ConversationService) List(ctx context.Context, userID string, limit int) ([]response_models.ConversationResponse, error) {
	convs, err := c.convRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		result = append(result, response_models.ConversationResponse{
			ID:        conv.ID,
			FlowID:    conv.FlowID,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		})
	}
	return result, nil
}

func (c *ConversationService) AppendMessage(ctx context.Context, userID string, conversationID uuid.UUID, req request_models.AppendMessageRequest) (*response_models.MessageResponse, error) {
	if _, err := c.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &db_models.Message{
		ConversationID: conversationID,
		Role:           db_models.MessageRole(req.Role),
		Content:        req.Content,
		GenerationID:   req.GenerationID,
		InputAssets:    req.InputAssets,
		OutputAssets:   req.OutputAssets,
	}
	if err := c.convRepo.AppendMessage(ctx, msg); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toMessageResponse(msg), nil
}

func (c *ConversationService) ListMessages(ctx context.Context, userID string, conversationID uuid.UUID, limit int) ([]response_models.MessageResponse, error) {
	if _, err := c.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msgs, err := c.convRepo.ListMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.MessageResponse, 0, len(msgs))
	for i := range msgs {
		result = append(result, *toMessageResponse(&msgs[i]))
	}
	return result, nil
}

func (c *ConversationService) Delete(ctx context.Context, userID string, conversationID uuid.UUID) error {
	if _, err := c.ownedConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := c.convRepo.Delete(ctx, conversationID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ConversationService) ownedConversation(ctx context.Context, userID string, conversationID uuid.UUID) (*db_models.Conversation, error) {
	conv, err := c.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if conv == nil {
		return nil, utils.ErrRecordNotFound
	}
	if conv.UserID != userID {
		return nil, utils.ErrUnauthorized
	}
	return conv, nil
}

func toMessageResponse(msg *db_models.Message) *response_models.MessageResponse {
	return &response_models.MessageResponse{
		ID:           msg.ID,
		Role:         string(msg.Role),
		Content:      msg.Content,
		GenerationID: msg.GenerationID,
		InputAssets:  msg.InputAssets,
		OutputAssets: msg.OutputAssets,
		CreatedAt:    msg.CreatedAt,
	}
}
