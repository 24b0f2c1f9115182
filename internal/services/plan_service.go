package services

import (
	"context"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
)

type PlanServiceInterface interface {
	ListActive(ctx context.Context) ([]response_models.PlanResponse, error)
	GetByID(ctx context.Context, planID uuid.UUID) (*response_models.PlanResponse, error)
	Create(ctx context.Context, plan *db_models.Plan) error
	Update(ctx context.Context, plan *db_models.Plan) error
	SeedDefaults(ctx context.Context) error
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{planRepo: planRepo}
}

func (p *PlanService) ListActive(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.ListActive(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i]))
	}
	return result, nil
}

func (p *PlanService) GetByID(ctx context.Context, planID uuid.UUID) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrRecordNotFound
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

func (p *PlanService) Create(ctx context.Context, plan *db_models.Plan) error {
	if err := p.planRepo.Create(ctx, plan); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PlanService) Update(ctx context.Context, plan *db_models.Plan) error {
	if err := p.planRepo.Update(ctx, plan); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// SeedDefaults inserts the launch catalog once; it is a no-op when any plan
// exists.
func (p *PlanService) SeedDefaults(ctx context.Context) error {
	count, err := p.planRepo.Count(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count > 0 {
		return nil
	}

	for _, plan := range defaultPlans() {
		plan := plan
		if err := p.planRepo.Create(ctx, &plan); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func defaultPlans() []db_models.Plan {
	return []db_models.Plan{
		{
			Code:             "free",
			Name:             "Free",
			Tier:             db_models.TierFree,
			Currency:         "INR",
			CreditsPerPeriod: 20,
			ImageCost:        1,
			VideoCost:        5,
			TalkingHeadCost:  8,
			MaxConcurrency:   1,
			RetentionDays:    7,
			SortOrder:        0,
			IsActive:         true,
		},
		{
			Code:              "creator",
			Name:              "Creator",
			Tier:              db_models.TierCreator,
			PriceMonthlyMinor: 149900,
			PriceAnnualMinor:  1499000,
			Currency:          "INR",
			CreditsPerPeriod:  500,
			ImageCost:         1,
			VideoCost:         5,
			TalkingHeadCost:   8,
			MaxConcurrency:    2,
			RetentionDays:     30,
			SortOrder:         1,
			IsActive:          true,
		},
		{
			Code:              "studio",
			Name:              "Studio",
			Tier:              db_models.TierStudio,
			PriceMonthlyMinor: 499900,
			PriceAnnualMinor:  4999000,
			Currency:          "INR",
			CreditsPerPeriod:  2000,
			ImageCost:         1,
			VideoCost:         5,
			TalkingHeadCost:   8,
			MaxConcurrency:    5,
			RetentionDays:     90,
			SortOrder:         2,
			IsActive:          true,
		},
	}
}

func toPlanResponse(plan *db_models.Plan) response_models.PlanResponse {
	return response_models.PlanResponse{
		ID:                plan.ID,
		Code:              plan.Code,
		Name:              plan.Name,
		Description:       plan.Description,
		Tier:              string(plan.Tier),
		PriceMonthlyMinor: plan.PriceMonthlyMinor,
		PriceAnnualMinor:  plan.PriceAnnualMinor,
		Currency:          plan.Currency,
		CreditsPerPeriod:  plan.CreditsPerPeriod,
		ImageCost:         plan.ImageCost,
		VideoCost:         plan.VideoCost,
		TalkingHeadCost:   plan.TalkingHeadCost,
		MaxConcurrency:    plan.MaxConcurrency,
		RetentionDays:     plan.RetentionDays,
		SortOrder:         plan.SortOrder,
		IsActive:          plan.IsActive,
	}
}
