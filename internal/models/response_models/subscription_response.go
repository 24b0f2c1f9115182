package response_models

import "github.com/google/uuid"

type SubscriptionResponse struct {
	ID                 uuid.UUID `json:"id"`
	PlanCode           string    `json:"plan_code"`
	PlanTier           string    `json:"plan_tier"`
	Status             string    `json:"status"`
	Credits            int64     `json:"credits"`
	CreditsUsed        int64     `json:"credits_used"`
	TotalCredits       int64     `json:"total_credits"`
	MaxConcurrency     int       `json:"max_concurrency"`
	RetentionDays      int       `json:"retention_days"`
	CurrentPeriodStart int64     `json:"current_period_start"`
	CurrentPeriodEnd   int64     `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
}

type DeductResult struct {
	Remaining     int64     `json:"remaining"`
	TransactionID uuid.UUID `json:"transaction_id"`
}

type RefundResult struct {
	NewBalance    int64     `json:"new_balance"`
	TransactionID uuid.UUID `json:"transaction_id"`
	// AlreadyRefunded is set when a previous refund for the same
	// generation made this call a no-op.
	AlreadyRefunded bool `json:"already_refunded,omitempty"`
}

type CreditAvailability struct {
	HasCredits bool  `json:"has_credits"`
	Current    int64 `json:"current"`
	Required   int64 `json:"required"`
}

type CreditTransactionResponse struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Amount       int64      `json:"amount"`
	BalanceAfter int64      `json:"balance_after"`
	Description  string     `json:"description"`
	GenerationID *uuid.UUID `json:"generation_id,omitempty"`
	CreatedAt    int64      `json:"created_at"`
}
