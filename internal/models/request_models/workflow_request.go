package request_models

import "github.com/google/uuid"

type TriggerWorkflowRequest struct {
	GenerationID uuid.UUID              `json:"generation_id" binding:"required"`
	FlowID       uuid.UUID              `json:"flow_id" binding:"required"`
	Input        map[string]interface{} `json:"input"`
	InputAssets  []string               `json:"input_assets"`
}

// WorkflowCallbackRequest is what the external workflow engine posts back.
type WorkflowCallbackRequest struct {
	GenerationID uuid.UUID              `json:"generation_id" binding:"required"`
	ExecutionID  string                 `json:"execution_id"`
	Status       string                 `json:"status" binding:"required"`
	Progress     *int                   `json:"progress"`
	OutputAssets []string               `json:"output_assets"`
	ErrorMessage *string                `json:"error_message"`
	ErrorDetails map[string]interface{} `json:"error_details"`
}
