package services

import (
	"context"
	"testing"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock ConversationRepository
type mockConversationRepository struct {
	repositories.IConversationRepository
	createFunc        func(ctx context.Context, conv *db_models.Conversation) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error)
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
	appendMessageFunc func(ctx context.Context, msg *db_models.Message) error
}

func (m *mockConversationRepository) Create(ctx context.Context, conv *db_models.Conversation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, conv)
	}
	conv.ID = uuid.New()
	return nil
}

func (m *mockConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockConversationRepository) AppendMessage(ctx context.Context, msg *db_models.Message) error {
	if m.appendMessageFunc != nil {
		return m.appendMessageFunc(ctx, msg)
	}
	msg.ID = uuid.New()
	return nil
}

func TestStartConversation_DefaultsTitleFromFlow(t *testing.T) {
	flow := activeFlow(db_models.TierFree, 5)

	flowRepo := &mockFlowRepository{
		getByIDFunc: func(ctx context.Context, flowID uuid.UUID) (*db_models.Flow, error) {
			return flow, nil
		},
	}

	svc := NewConversationService(&mockConversationRepository{}, flowRepo)

	conv, err := svc.Start(context.Background(), "user-1", request_models.StartConversationRequest{
		FlowID: flow.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Product Shot", conv.Title)
	assert.Equal(t, flow.ID, conv.FlowID)
}

func TestStartConversation_UnknownFlow(t *testing.T) {
	svc := NewConversationService(&mockConversationRepository{}, &mockFlowRepository{})

	_, err := svc.Start(context.Background(), "user-1", request_models.StartConversationRequest{
		FlowID: uuid.New(),
	})
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}

func TestConversationOwnership(t *testing.T) {
	conv := &db_models.Conversation{UserID: "user-1", Title: "Shoe campaign"}
	conv.ID = uuid.New()

	convRepo := &mockConversationRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
			return conv, nil
		},
	}

	svc := NewConversationService(convRepo, &mockFlowRepository{})

	_, err := svc.AppendMessage(context.Background(), "someone-else", conv.ID, request_models.AppendMessageRequest{
		Role:    "user",
		Content: "make it pop",
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	err = svc.Delete(context.Background(), "someone-else", conv.ID)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	msg, err := svc.AppendMessage(context.Background(), "user-1", conv.ID, request_models.AppendMessageRequest{
		Role:    "user",
		Content: "make it pop",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "make it pop", msg.Content)
}

func TestDeleteConversation_MissingConversation(t *testing.T) {
	svc := NewConversationService(&mockConversationRepository{}, &mockFlowRepository{})

	err := svc.Delete(context.Background(), "user-1", uuid.New())
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}
