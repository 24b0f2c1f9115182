package credit_fx

import (
	"martylabs/internal/api/controllers"
	"martylabs/internal/repositories"
	"martylabs/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideCreditService, provideSubscriptionRepo, provideEventRepo, provideSubscriptionController)

func provideSubscriptionRepo(db *gorm.DB) repositories.ISubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideEventRepo(db *gorm.DB) repositories.IEventRepository {
	return repositories.NewEventRepository(db)
}

func provideCreditService(
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	events repositories.IEventRepository,
	logger *zap.Logger,
) services.CreditServiceInterface {
	return services.NewCreditService(subRepo, planRepo, events, logger)
}

func provideSubscriptionController(creditService services.CreditServiceInterface) *controllers.SubscriptionController {
	return controllers.NewSubscriptionController(creditService)
}
