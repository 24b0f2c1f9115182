package payment_fx

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
	providePaymentService, provideCheckoutClient, providePaymentController, provideWebhookController)

func provideCheckoutClient(cfg *config.Config) infra.CheckoutClient {
	return infra.NewRazorpayClient(cfg)
}

func providePaymentService(
	planRepo repositories.IPlanRepository,
	creditSvc services.CreditServiceInterface,
	events repositories.IEventRepository,
	checkout infra.CheckoutClient,
	logger *zap.Logger,
) services.PaymentServiceInterface {
	return services.NewPaymentService(planRepo, creditSvc, events, checkout, logger)
}

func providePaymentController(paymentService services.PaymentServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}

func provideWebhookController(paymentService services.PaymentServiceInterface, cfg *config.Config, logger *zap.Logger) *controllers.WebhookController {
	return controllers.NewWebhookController(paymentService, cfg, logger)
}
