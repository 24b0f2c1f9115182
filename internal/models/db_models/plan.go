package db_models

import (
	"gorm.io/datatypes"
)

type PlanTier string

const (
	TierFree    PlanTier = "free"
	TierCreator PlanTier = "creator"
	TierStudio  PlanTier = "studio"
)

// tierRank orders tiers for flow gating. Higher rank includes lower ones.
var tierRank = map[PlanTier]int{
	TierFree:    0,
	TierCreator: 1,
	TierStudio:  2,
}

// Includes reports whether a subscription on tier t can run flows gated on
// required.
func (t PlanTier) Includes(required PlanTier) bool {
	return tierRank[t] >= tierRank[required]
}

type ServiceType string

const (
	ServiceImage       ServiceType = "image"
	ServiceVideo       ServiceType = "video"
	ServiceTalkingHead ServiceType = "talking_head"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // e.g., "free", "creator", "studio"
	Name        string
	Description *string
	Tier        PlanTier `gorm:"index"`

	PriceMonthlyMinor int64  // 149900 = ₹1499.00
	PriceAnnualMinor  int64
	Currency          string `gorm:"size:3"`

	CreditsPerPeriod int64
	ImageCost        int64
	VideoCost        int64
	TalkingHeadCost  int64
	MaxConcurrency   int
	RetentionDays    int

	// Provider plan ids used when creating checkout subscriptions.
	ProviderPlanIDMonthly string
	ProviderPlanIDAnnual  string

	Features  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	SortOrder int
	IsActive  bool `gorm:"default:true"`
}

func (p *Plan) ServiceCost(service ServiceType) int64 {
	switch service {
	case ServiceVideo:
		return p.VideoCost
	case ServiceTalkingHead:
		return p.TalkingHeadCost
	default:
		return p.ImageCost
	}
}

func (p *Plan) PriceFor(cycle BillingCycle) int64 {
	if cycle == CycleAnnual {
		return p.PriceAnnualMinor
	}
	return p.PriceMonthlyMinor
}

func (p *Plan) ProviderPlanID(cycle BillingCycle) string {
	if cycle == CycleAnnual {
		return p.ProviderPlanIDAnnual
	}
	return p.ProviderPlanIDMonthly
}
