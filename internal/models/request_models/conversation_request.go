package request_models

import "github.com/google/uuid"

type StartConversationRequest struct {
	FlowID uuid.UUID `json:"flow_id" binding:"required"`
	Title  string    `json:"title"`
}

type AppendMessageRequest struct {
	Role         string     `json:"role" binding:"required,oneof=user assistant"`
	Content      string     `json:"content" binding:"required"`
	GenerationID *uuid.UUID `json:"generation_id"`
	InputAssets  []string   `json:"input_assets"`
	OutputAssets []string   `json:"output_assets"`
}
