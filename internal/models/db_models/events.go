package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UsageEventType string

const (
	UsageGenerationStarted   UsageEventType = "generation_started"
	UsageGenerationCompleted UsageEventType = "generation_completed"
	UsageGenerationFailed    UsageEventType = "generation_failed"
	UsageGenerationCancelled UsageEventType = "generation_cancelled"
	UsageCreditRefund        UsageEventType = "credit_refund"
	UsageSubscriptionRenewed UsageEventType = "subscription_renewed"
	UsagePaymentFailed       UsageEventType = "payment_failed"
)

type UsageEvent struct {
	BaseModel
	UserID       string         `gorm:"index"`
	Type         UsageEventType `gorm:"index"`
	GenerationID *uuid.UUID     `gorm:"index"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// BillingEvent is the billing history a user sees: captured charges, failed
// payments, checkout attempts. Raw provider payloads are kept for audit.
type BillingEvent struct {
	BaseModel
	UserID      string `gorm:"index"`
	EventType   string `gorm:"index"`
	PaymentID   string `gorm:"index"`
	AmountMinor int64
	Currency    string `gorm:"size:3"`
	Status      string
	Payload     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// WebhookEvent records processed provider event ids so duplicate deliveries
// are acknowledged without re-running their ledger mutations.
type WebhookEvent struct {
	BaseModel
	Provider    string `gorm:"uniqueIndex:idx_provider_event"`
	EventID     string `gorm:"uniqueIndex:idx_provider_event"`
	ProcessedAt int64
}
