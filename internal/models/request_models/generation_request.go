package request_models

import "github.com/google/uuid"

type CreateGenerationRequest struct {
	FlowID         uuid.UUID              `json:"flow_id" binding:"required"`
	ConversationID *uuid.UUID             `json:"conversation_id"`
	Input          map[string]interface{} `json:"input" binding:"required"`
	InputAssets    []string               `json:"input_assets"`
}

type UpdateGenerationStatusRequest struct {
	ID           uuid.UUID              `json:"generation_id" binding:"required"`
	Status       string                 `json:"status" binding:"required"`
	Progress     *int                   `json:"progress"`
	ExecutionID  *string                `json:"execution_id"`
	OutputAssets []string               `json:"output_assets"`
	ErrorMessage *string                `json:"error_message"`
	ErrorDetails map[string]interface{} `json:"error_details"`
}

type ListGenerationsQuery struct {
	Status string `form:"status"`
	FlowID string `form:"flow_id"`
	Limit  int    `form:"limit,default=20"`
}
