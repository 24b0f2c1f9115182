package flow_fx

import (
	"martylabs/internal/api/controllers"
	"martylabs/internal/repositories"
	"martylabs/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideFlowService, provideFlowRepo, provideFlowController)

func provideFlowRepo(db *gorm.DB) repositories.IFlowRepository {
	return repositories.NewFlowRepository(db)
}

func provideFlowService(flowRepo repositories.IFlowRepository) services.FlowServiceInterface {
	return services.NewFlowService(flowRepo)
}

func provideFlowController(flowService services.FlowServiceInterface) *controllers.FlowController {
	return controllers.NewFlowController(flowService)
}
