package services

import (
	"context"
	"encoding/json"

	"martylabs/internal/config"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenerationServiceInterface interface {
	Create(ctx context.Context, userID string, req request_models.CreateGenerationRequest) (*db_models.Generation, error)
	UpdateStatus(ctx context.Context, req request_models.UpdateGenerationStatusRequest) (*db_models.Generation, error)
	Cancel(ctx context.Context, id uuid.UUID, userID string) (*db_models.Generation, error)
	GetByID(ctx context.Context, id uuid.UUID, withFlow bool) (*db_models.Generation, error)
	ListByUser(ctx context.Context, userID string, status string, flowID *uuid.UUID, limit int) ([]db_models.Generation, error)
	CheckConcurrency(ctx context.Context, userID string) (*response_models.ConcurrencyStatus, error)
}

type GenerationService struct {
	genRepo   repositories.IGenerationRepository
	flowRepo  repositories.IFlowRepository
	creditSvc CreditServiceInterface
	events    repositories.IEventRepository
	enforce   bool
	logger    *zap.Logger
}

func NewGenerationService(
	genRepo repositories.IGenerationRepository,
	flowRepo repositories.IFlowRepository,
	creditSvc CreditServiceInterface,
	events repositories.IEventRepository,
	cfg *config.Config,
	logger *zap.Logger,
) GenerationServiceInterface {
	return &GenerationService{
		genRepo:   genRepo,
		flowRepo:  flowRepo,
		creditSvc: creditSvc,
		events:    events,
		enforce:   cfg.EnforceCreditChecks,
		logger:    logger,
	}
}

func (g *GenerationService) Create(ctx context.Context, userID string, req request_models.CreateGenerationRequest) (*db_models.Generation, error) {
	sub, err := g.creditSvc.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	flow, err := g.flowRepo.GetByID(ctx, req.FlowID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if flow == nil || !flow.IsActive {
		return nil, utils.ErrRecordNotFound
	}

	for _, field := range flow.RequiredFields() {
		if _, ok := req.Input[field]; !ok {
			return nil, utils.ErrInvalidInput
		}
	}

	if g.enforce {
		if !sub.PlanTier.Includes(flow.RequiredTier) {
			return nil, utils.ErrPlanTierRequired
		}

		active, err := g.genRepo.CountActiveByUser(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if active >= int64(sub.MaxConcurrency) {
			return nil, utils.ErrConcurrencyLimit
		}

		if sub.Credits < flow.CreditsPerGeneration {
			return nil, utils.ErrInsufficientCredits
		}
	}

	input, err := json.Marshal(req.Input)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	gen := &db_models.Generation{
		UserID:         userID,
		FlowID:         flow.ID,
		ConversationID: req.ConversationID,
		Status:         db_models.GenQueued,
		Progress:       0,
		CreditsUsed:    flow.CreditsPerGeneration,
		Input:          input,
		InputAssets:    req.InputAssets,
		ExpiresAt:      utils.ExpiryAfterDays(sub.RetentionDays),
	}
	if err := g.genRepo.Create(ctx, gen); err != nil {
		return nil, utils.ErrDatabaseError
	}

	genID := gen.ID
	g.appendUsage(ctx, &db_models.UsageEvent{
		UserID:       userID,
		Type:         db_models.UsageGenerationStarted,
		GenerationID: &genID,
	})

	g.logger.Info("generation created",
		zap.String("user_id", userID),
		zap.String("generation_id", gen.ID.String()),
		zap.String("flow", flow.Slug))

	return gen, nil
}

func (g *GenerationService) UpdateStatus(ctx context.Context, req request_models.UpdateGenerationStatusRequest) (*db_models.Generation, error) {
	target, ok := db_models.ParseGenerationStatus(req.Status)
	if !ok {
		return nil, utils.ErrInvalidInput
	}

	gen, err := g.genRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if gen == nil {
		return nil, utils.ErrRecordNotFound
	}

	if !gen.Status.CanTransitionTo(target) {
		return nil, utils.ErrInvalidState
	}

	now := utils.NowUnixSeconds()
	gen.Status = target
	if req.ExecutionID != nil {
		gen.ExecutionID = req.ExecutionID
	}

	switch target {
	case db_models.GenProcessing:
		if gen.ProcessingStartedAt == nil {
			started := now
			gen.ProcessingStartedAt = &started
		}
		if req.Progress != nil {
			gen.Progress = clampProgress(*req.Progress)
		}

	case db_models.GenCompleted:
		completed := now
		gen.ProcessingCompletedAt = &completed
		gen.Progress = 100
		gen.OutputAssets = req.OutputAssets

	case db_models.GenFailed:
		completed := now
		gen.ProcessingCompletedAt = &completed
		gen.ErrorMessage = req.ErrorMessage
		if req.ErrorDetails != nil {
			if details, err := json.Marshal(req.ErrorDetails); err == nil {
				gen.ErrorDetails = details
			}
		}

	case db_models.GenCancelled:
		cancelled := now
		gen.CancelledAt = &cancelled
	}

	if err := g.genRepo.Update(ctx, gen); err != nil {
		return nil, utils.ErrDatabaseError
	}

	genID := gen.ID
	switch target {
	case db_models.GenCompleted:
		g.appendUsage(ctx, &db_models.UsageEvent{
			UserID:       gen.UserID,
			Type:         db_models.UsageGenerationCompleted,
			GenerationID: &genID,
		})

	case db_models.GenFailed:
		g.refundGeneration(ctx, gen, failureReason(req.ErrorMessage))
		g.appendUsage(ctx, &db_models.UsageEvent{
			UserID:       gen.UserID,
			Type:         db_models.UsageGenerationFailed,
			GenerationID: &genID,
		})

	case db_models.GenCancelled:
		g.refundGeneration(ctx, gen, "Generation cancelled")
		g.appendUsage(ctx, &db_models.UsageEvent{
			UserID:       gen.UserID,
			Type:         db_models.UsageGenerationCancelled,
			GenerationID: &genID,
		})
	}

	return gen, nil
}

func (g *GenerationService) Cancel(ctx context.Context, id uuid.UUID, userID string) (*db_models.Generation, error) {
	gen, err := g.genRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if gen == nil {
		return nil, utils.ErrRecordNotFound
	}
	if gen.UserID != userID {
		return nil, utils.ErrUnauthorized
	}
	if gen.Status != db_models.GenQueued && gen.Status != db_models.GenProcessing {
		return nil, utils.ErrInvalidState
	}

	return g.UpdateStatus(ctx, request_models.UpdateGenerationStatusRequest{
		ID:     id,
		Status: string(db_models.GenCancelled),
	})
}

func (g *GenerationService) GetByID(ctx context.Context, id uuid.UUID, withFlow bool) (*db_models.Generation, error) {
	var (
		gen *db_models.Generation
		err error
	)
	if withFlow {
		gen, err = g.genRepo.GetByIDWithFlow(ctx, id)
	} else {
		gen, err = g.genRepo.GetByID(ctx, id)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if gen == nil {
		return nil, utils.ErrRecordNotFound
	}
	return gen, nil
}

func (g *GenerationService) ListByUser(ctx context.Context, userID string, status string, flowID *uuid.UUID, limit int) ([]db_models.Generation, error) {
	if status != "" {
		if _, ok := db_models.ParseGenerationStatus(status); !ok {
			return nil, utils.ErrInvalidInput
		}
	}

	gens, err := g.genRepo.ListByUser(ctx, userID, status, flowID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return gens, nil
}

func (g *GenerationService) CheckConcurrency(ctx context.Context, userID string) (*response_models.ConcurrencyStatus, error) {
	sub, err := g.creditSvc.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := g.genRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ConcurrencyStatus{
		Available: active < int64(sub.MaxConcurrency),
		Current:   int(active),
		Maximum:   sub.MaxConcurrency,
	}, nil
}

// refundGeneration compensates a terminal failure/cancel. The refund is
// idempotent per generation; its own failure is logged, not escalated.
func (g *GenerationService) refundGeneration(ctx context.Context, gen *db_models.Generation, reason string) {
	if gen.CreditsUsed <= 0 {
		return
	}
	if _, err := g.creditSvc.Refund(ctx, gen.UserID, gen.ID, gen.CreditsUsed, reason); err != nil {
		g.logger.Error("compensating refund failed",
			zap.String("user_id", gen.UserID),
			zap.String("generation_id", gen.ID.String()),
			zap.Error(err))
	}
}

func (g *GenerationService) appendUsage(ctx context.Context, event *db_models.UsageEvent) {
	if err := g.events.AppendUsage(ctx, event); err != nil {
		g.logger.Error("failed to append usage event",
			zap.String("user_id", event.UserID), zap.Error(err))
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func failureReason(errMsg *string) string {
	if errMsg != nil && *errMsg != "" {
		return "Generation failed: " + *errMsg
	}
	return "Generation failed"
}
