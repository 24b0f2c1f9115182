package services

import (
	"context"
	"encoding/json"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"gorm.io/datatypes"
)

type FlowServiceInterface interface {
	ListActive(ctx context.Context, category string) ([]response_models.FlowResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response_models.FlowResponse, error)
	Upsert(ctx context.Context, flow *db_models.Flow) error
	SeedDefaults(ctx context.Context) error
}

type FlowService struct {
	flowRepo repositories.IFlowRepository
}

func NewFlowService(flowRepo repositories.IFlowRepository) FlowServiceInterface {
	return &FlowService{flowRepo: flowRepo}
}

func (f *FlowService) ListActive(ctx context.Context, category string) ([]response_models.FlowResponse, error) {
	flows, err := f.flowRepo.ListActive(ctx, category)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.FlowResponse, 0, len(flows))
	for i := range flows {
		result = append(result, toFlowResponse(&flows[i]))
	}
	return result, nil
}

func (f *FlowService) GetBySlug(ctx context.Context, slug string) (*response_models.FlowResponse, error) {
	flow, err := f.flowRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if flow == nil || !flow.IsActive {
		return nil, utils.ErrRecordNotFound
	}

	resp := toFlowResponse(flow)
	return &resp, nil
}

func (f *FlowService) Upsert(ctx context.Context, flow *db_models.Flow) error {
	if err := f.flowRepo.Upsert(ctx, flow); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (f *FlowService) SeedDefaults(ctx context.Context) error {
	count, err := f.flowRepo.Count(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count > 0 {
		return nil
	}

	for _, flow := range defaultFlows() {
		flow := flow
		if err := f.flowRepo.Upsert(ctx, &flow); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func schema(required ...string) datatypes.JSON {
	b, _ := json.Marshal(map[string]interface{}{"required": required})
	return b
}

func defaultFlows() []db_models.Flow {
	return []db_models.Flow{
		{
			Slug:                 "product-shot",
			Title:                "Product Shot",
			Category:             db_models.FlowImage,
			InputSchema:          schema("prompt"),
			CreditsPerGeneration: 1,
			RequiredTier:         db_models.TierFree,
			WorkflowID:           "wf_product_shot",
			IsActive:             true,
			SortOrder:            0,
		},
		{
			Slug:                 "motion-ad",
			Title:                "Motion Ad",
			Category:             db_models.FlowVideo,
			InputSchema:          schema("prompt", "duration"),
			CreditsPerGeneration: 5,
			RequiredTier:         db_models.TierCreator,
			WorkflowID:           "wf_motion_ad",
			IsActive:             true,
			SortOrder:            1,
		},
		{
			Slug:                 "talking-head",
			Title:                "Talking Head",
			Category:             db_models.FlowLipsync,
			InputSchema:          schema("script", "avatar"),
			CreditsPerGeneration: 8,
			RequiredTier:         db_models.TierCreator,
			WorkflowID:           "wf_talking_head",
			IsActive:             true,
			SortOrder:            2,
		},
		{
			Slug:                 "producer-agent",
			Title:                "Producer Agent",
			Category:             db_models.FlowAgent,
			InputSchema:          schema("prompt"),
			CreditsPerGeneration: 2,
			RequiredTier:         db_models.TierFree,
			WorkflowID:           "wf_producer_agent",
			IsActive:             true,
			SortOrder:            3,
		},
	}
}

func toFlowResponse(flow *db_models.Flow) response_models.FlowResponse {
	var inputSchema map[string]interface{}
	_ = json.Unmarshal(flow.InputSchema, &inputSchema)

	return response_models.FlowResponse{
		ID:                   flow.ID,
		Slug:                 flow.Slug,
		Title:                flow.Title,
		Category:             string(flow.Category),
		InputSchema:          inputSchema,
		CreditsPerGeneration: flow.CreditsPerGeneration,
		RequiredTier:         string(flow.RequiredTier),
	}
}
