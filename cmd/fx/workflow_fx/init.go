package workflow_fx

import (
	"martylabs/internal/api/controllers"
	"martylabs/internal/config"
	"martylabs/internal/infra"
	"martylabs/internal/repositories"
	"martylabs/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	provideWorkflowService, provideWorkflowClient, provideWorkflowController)

func provideWorkflowClient(cfg *config.Config) infra.WorkflowClient {
	return infra.NewN8NClient(cfg)
}

func provideWorkflowService(
	genSvc services.GenerationServiceInterface,
	creditSvc services.CreditServiceInterface,
	flowRepo repositories.IFlowRepository,
	engine infra.WorkflowClient,
	cfg *config.Config,
	logger *zap.Logger,
) services.WorkflowServiceInterface {
	return services.NewWorkflowService(genSvc, creditSvc, flowRepo, engine, cfg, logger)
}

func provideWorkflowController(workflowService services.WorkflowServiceInterface, cfg *config.Config) *controllers.WorkflowController {
	return controllers.NewWorkflowController(workflowService, cfg)
}
