package response_models

import "github.com/google/uuid"

type TriggerWorkflowResponse struct {
	Success     bool   `json:"success"`
	ExecutionID string `json:"execution_id,omitempty"`
}

type CreateCheckoutResponse struct {
	ProviderSubscriptionID string `json:"provider_subscription_id"`
	ShortURL               string `json:"short_url"`
	AmountMinor            int64  `json:"amount_minor"`
	Currency               string `json:"currency"`
}

type BillingEventResponse struct {
	ID          uuid.UUID `json:"id"`
	EventType   string    `json:"event_type"`
	PaymentID   string    `json:"payment_id,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   int64     `json:"created_at"`
}

type ConversationResponse struct {
	ID        uuid.UUID `json:"id"`
	FlowID    uuid.UUID `json:"flow_id"`
	Title     string    `json:"title"`
	CreatedAt int64     `json:"created_at"`
}

type MessageResponse struct {
	ID           uuid.UUID  `json:"id"`
	Role         string     `json:"role"`
	Content      string     `json:"content"`
	GenerationID *uuid.UUID `json:"generation_id,omitempty"`
	InputAssets  []string   `json:"input_assets,omitempty"`
	OutputAssets []string   `json:"output_assets,omitempty"`
	CreatedAt    int64      `json:"created_at"`
}
