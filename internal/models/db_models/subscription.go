package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusPaused    SubscriptionStatus = "paused"
	SubStatusHalted    SubscriptionStatus = "halted"
	SubStatusCompleted SubscriptionStatus = "completed"
	SubStatusCancelled SubscriptionStatus = "cancelled"
	SubStatusPastDue   SubscriptionStatus = "past_due"
)

// Subscription is the one live billing row per user. Plan limits are
// denormalized at (re)subscription time so generation-time checks never
// join against the catalog.
type Subscription struct {
	BaseModel
	UserID string    `gorm:"index"` // external auth id
	PlanID uuid.UUID `gorm:"index"`

	PlanCode string
	PlanTier PlanTier
	Status   SubscriptionStatus `gorm:"index"`
	Cycle    BillingCycle

	// Live balance. credits + credits_used should reconcile against
	// total_credits for the period via the transaction log.
	Credits      int64
	CreditsUsed  int64
	TotalCredits int64

	// Plan snapshot
	ImageCost       int64
	VideoCost       int64
	TalkingHeadCost int64
	MaxConcurrency  int
	RetentionDays   int
	Features        datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// Billing period bounds in unix millis (provider sends seconds).
	CurrentPeriodStart int64
	CurrentPeriodEnd   int64

	CancelAtPeriodEnd bool
	CancelledAt       *int64

	ProviderCustomerID string `gorm:"index"`
	ProviderSubID      string `gorm:"index"`
	LastPaymentID      string

	Plan Plan `gorm:"foreignKey:PlanID"`
}

func (s *Subscription) ServiceCost(service ServiceType) int64 {
	switch service {
	case ServiceVideo:
		return s.VideoCost
	case ServiceTalkingHead:
		return s.TalkingHeadCost
	default:
		return s.ImageCost
	}
}
