package generation_fx

import (
	"martylabs/internal/api/controllers"
	"martylabs/internal/config"
	"martylabs/internal/repositories"
	"martylabs/internal/services"
	"martylabs/internal/tasks"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideGenerationService, provideGenerationRepo, provideGenerationController, provideSweeper)

func provideGenerationRepo(db *gorm.DB) repositories.IGenerationRepository {
	return repositories.NewGenerationRepository(db)
}

func provideGenerationService(
	genRepo repositories.IGenerationRepository,
	flowRepo repositories.IFlowRepository,
	creditSvc services.CreditServiceInterface,
	events repositories.IEventRepository,
	cfg *config.Config,
	logger *zap.Logger,
) services.GenerationServiceInterface {
	return services.NewGenerationService(genRepo, flowRepo, creditSvc, events, cfg, logger)
}

func provideGenerationController(generationService services.GenerationServiceInterface) *controllers.GenerationController {
	return controllers.NewGenerationController(generationService)
}

func provideSweeper(
	genRepo repositories.IGenerationRepository,
	genSvc services.GenerationServiceInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *tasks.StaleGenerationSweeper {
	return tasks.NewStaleGenerationSweeper(genRepo, genSvc, cfg, logger)
}
