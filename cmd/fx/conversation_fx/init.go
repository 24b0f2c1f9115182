package conversation_fx

import (
	"martylabs/internal/api/controllers"
	"martylabs/internal/repositories"
	"martylabs/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideConversationService, provideConversationRepo, provideConversationController)

func provideConversationRepo(db *gorm.DB) repositories.IConversationRepository {
	return repositories.NewConversationRepository(db)
}

func provideConversationService(
	convRepo repositories.IConversationRepository,
	flowRepo repositories.IFlowRepository,
) services.ConversationServiceInterface {
	return services.NewConversationService(convRepo, flowRepo)
}

func provideConversationController(conversationService services.ConversationServiceInterface) *controllers.ConversationController {
	return controllers.NewConversationController(conversationService)
}
