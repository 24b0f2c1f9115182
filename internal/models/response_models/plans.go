package response_models

import "github.com/google/uuid"

type PlanResponse struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Tier              string    `json:"tier"`
	PriceMonthlyMinor int64     `json:"price_monthly_minor"`
	PriceAnnualMinor  int64     `json:"price_annual_minor"`
	Currency          string    `json:"currency"`
	CreditsPerPeriod  int64     `json:"credits_per_period"`
	ImageCost         int64     `json:"image_cost"`
	VideoCost         int64     `json:"video_cost"`
	TalkingHeadCost   int64     `json:"talking_head_cost"`
	MaxConcurrency    int       `json:"max_concurrency"`
	RetentionDays     int       `json:"retention_days"`
	SortOrder         int       `json:"sort_order"`
	IsActive          bool      `json:"is_active"`
}

type FlowResponse struct {
	ID                   uuid.UUID              `json:"id"`
	Slug                 string                 `json:"slug"`
	Title                string                 `json:"title"`
	Category             string                 `json:"category"`
	InputSchema          map[string]interface{} `json:"input_schema,omitempty"`
	CreditsPerGeneration int64                  `json:"credits_per_generation"`
	RequiredTier         string                 `json:"required_tier"`
}
