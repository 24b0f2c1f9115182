package response_models

import (
	"github.com/google/uuid"
)

type GenerationResponse struct {
	ID                    uuid.UUID              `json:"id"`
	FlowID                uuid.UUID              `json:"flow_id"`
	FlowTitle             string                 `json:"flow_title,omitempty"`
	ConversationID        *uuid.UUID             `json:"conversation_id,omitempty"`
	Status                string                 `json:"status"`
	Progress              int                    `json:"progress"`
	CreditsUsed           int64                  `json:"credits_used"`
	Input                 map[string]interface{} `json:"input,omitempty"`
	InputAssets           []string               `json:"input_assets,omitempty"`
	OutputAssets          []string               `json:"output_assets,omitempty"`
	ErrorMessage          *string                `json:"error_message,omitempty"`
	ExecutionID           *string                `json:"execution_id,omitempty"`
	CreatedAt             int64                  `json:"created_at"`
	ProcessingStartedAt   *int64                 `json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *int64                 `json:"processing_completed_at,omitempty"`
	CancelledAt           *int64                 `json:"cancelled_at,omitempty"`
	ExpiresAt             int64                  `json:"expires_at"`
}

type ConcurrencyStatus struct {
	Available bool `json:"available"`
	Current   int  `json:"current"`
	Maximum   int  `json:"maximum"`
}

type CancelGenerationResponse struct {
	Success bool `json:"success"`
}
