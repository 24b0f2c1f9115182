package services

import (
	"context"
	"errors"
	"fmt"

	"martylabs/internal/config"
	"martylabs/internal/infra"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"go.uber.org/zap"
)

type WorkflowServiceInterface interface {
	Trigger(ctx context.Context, userID string, req request_models.TriggerWorkflowRequest) (*response_models.TriggerWorkflowResponse, error)
	HandleCallback(ctx context.Context, req request_models.WorkflowCallbackRequest) error
}

// WorkflowService orchestrates credit check → debit → external trigger →
// status update, with a compensating refund when the trigger fails.
type WorkflowService struct {
	genSvc    GenerationServiceInterface
	creditSvc CreditServiceInterface
	flowRepo  repositories.IFlowRepository
	engine    infra.WorkflowClient
	routes    map[string]string
	appURL    string
	logger    *zap.Logger
}

func NewWorkflowService(
	genSvc GenerationServiceInterface,
	creditSvc CreditServiceInterface,
	flowRepo repositories.IFlowRepository,
	engine infra.WorkflowClient,
	cfg *config.Config,
	logger *zap.Logger,
) WorkflowServiceInterface {
	return &WorkflowService{
		genSvc:    genSvc,
		creditSvc: creditSvc,
		flowRepo:  flowRepo,
		engine:    engine,
		routes:    cfg.FlowRouteOverrides,
		appURL:    cfg.PublicAppURL,
		logger:    logger,
	}
}

func (w *WorkflowService) Trigger(ctx context.Context, userID string, req request_models.TriggerWorkflowRequest) (*response_models.TriggerWorkflowResponse, error) {
	gen, err := w.genSvc.GetByID(ctx, req.GenerationID, false)
	if err != nil {
		return nil, err
	}
	if gen.UserID != userID {
		return nil, utils.ErrUnauthorized
	}
	if gen.Status != db_models.GenQueued {
		return nil, utils.ErrInvalidState
	}

	flow, err := w.flowRepo.GetByID(ctx, req.FlowID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if flow == nil {
		return nil, utils.ErrRecordNotFound
	}

	availability, err := w.creditSvc.CheckAvailability(ctx, userID, flow.ServiceType())
	if err != nil {
		return nil, err
	}
	if !availability.HasCredits {
		return nil, utils.ErrInsufficientCredits
	}

	if _, err := w.creditSvc.Deduct(ctx, userID, gen.ID, flow.ServiceType(), flow.CreditsPerGeneration); err != nil {
		return nil, err
	}

	workflowID := flow.WorkflowID
	if override, ok := w.routes[flow.Slug]; ok && override != "" {
		workflowID = override
	}

	executionID, err := w.engine.TriggerWorkflow(ctx, workflowID, infra.WorkflowPayload{
		GenerationID: gen.ID,
		Input:        req.Input,
		InputAssets:  req.InputAssets,
		CallbackURL:  fmt.Sprintf("%s/api/v1/workflows/callback", w.appURL),
	})
	if err != nil {
		w.logger.Error("workflow trigger failed",
			zap.String("generation_id", gen.ID.String()),
			zap.String("workflow_id", workflowID),
			zap.Error(err))

		w.failTriggeredGeneration(ctx, gen, err)

		if errors.Is(err, utils.ErrUpstreamFailure) {
			return nil, err
		}
		return nil, utils.ErrUpstreamFailure
	}

	execID := executionID
	if _, err := w.genSvc.UpdateStatus(ctx, request_models.UpdateGenerationStatusRequest{
		ID:          gen.ID,
		Status:      string(db_models.GenProcessing),
		ExecutionID: &execID,
	}); err != nil {
		w.logger.Error("failed to mark generation processing",
			zap.String("generation_id", gen.ID.String()), zap.Error(err))
	}

	return &response_models.TriggerWorkflowResponse{
		Success:     true,
		ExecutionID: executionID,
	}, nil
}

// failTriggeredGeneration marks the generation failed after an upstream
// trigger error. The failed transition refunds the debit.
func (w *WorkflowService) failTriggeredGeneration(ctx context.Context, gen *db_models.Generation, cause error) {
	msg := "Workflow trigger failed: " + cause.Error()
	if _, err := w.genSvc.UpdateStatus(ctx, request_models.UpdateGenerationStatusRequest{
		ID:           gen.ID,
		Status:       string(db_models.GenFailed),
		ErrorMessage: &msg,
	}); err != nil {
		w.logger.Error("failed to mark generation failed after trigger error",
			zap.String("generation_id", gen.ID.String()), zap.Error(err))
	}
}

// HandleCallback maps the engine's workflow lifecycle onto generation
// status updates. Failure transitions refund inside UpdateStatus.
func (w *WorkflowService) HandleCallback(ctx context.Context, req request_models.WorkflowCallbackRequest) error {
	status, ok := db_models.ParseGenerationStatus(req.Status)
	if !ok {
		return utils.ErrInvalidInput
	}

	update := request_models.UpdateGenerationStatusRequest{
		ID:           req.GenerationID,
		Status:       string(status),
		Progress:     req.Progress,
		OutputAssets: req.OutputAssets,
		ErrorMessage: req.ErrorMessage,
		ErrorDetails: req.ErrorDetails,
	}
	if req.ExecutionID != "" {
		execID := req.ExecutionID
		update.ExecutionID = &execID
	}

	_, err := w.genSvc.UpdateStatus(ctx, update)
	return err
}
