package main

import (
	"context"
	"log"

	"martylabs/cmd/fx/config_fx"
	"martylabs/cmd/fx/conversation_fx"
	"martylabs/cmd/fx/credit_fx"
	"martylabs/cmd/fx/db_fx"
	"martylabs/cmd/fx/flow_fx"
	"martylabs/cmd/fx/generation_fx"
	"martylabs/cmd/fx/logger_fx"
	"martylabs/cmd/fx/payment_fx"
	"martylabs/cmd/fx/plan_fx"
	"martylabs/cmd/fx/workflow_fx"
	"martylabs/internal/api/controllers"
	"martylabs/internal/config"
	"martylabs/internal/infra"
	"martylabs/internal/services"
	"martylabs/internal/tasks"
	"martylabs/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		plan_fx.Module,
		flow_fx.Module,
		credit_fx.Module,
		generation_fx.Module,
		conversation_fx.Module,
		workflow_fx.Module,
		payment_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(infra.AutoMigrate),
		fx.Invoke(SeedCatalogs),
		fx.Invoke(StartSweeper),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func SeedCatalogs(planService services.PlanServiceInterface, flowService services.FlowServiceInterface) {
	ctx := context.Background()
	if err := planService.SeedDefaults(ctx); err != nil {
		log.Fatalf("failed to seed plans: %v", err)
	}
	if err := flowService.SeedDefaults(ctx); err != nil {
		log.Fatalf("failed to seed flows: %v", err)
	}
}

func StartSweeper(lc fx.Lifecycle, sweeper *tasks.StaleGenerationSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	generationController *controllers.GenerationController,
	subscriptionController *controllers.SubscriptionController,
	planController *controllers.PlanController,
	flowController *controllers.FlowController,
	conversationController *controllers.ConversationController,
	workflowController *controllers.WorkflowController,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.PublicAppURL))
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		generationController,
		subscriptionController,
		planController,
		flowController,
		conversationController,
		workflowController,
		paymentController,
		webhookController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	generationController *controllers.GenerationController,
	subscriptionController *controllers.SubscriptionController,
	planController *controllers.PlanController,
	flowController *controllers.FlowController,
	conversationController *controllers.ConversationController,
	workflowController *controllers.WorkflowController,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController) {

	r.GET("/health", workflowController.Health)

	v1 := r.Group("/api/v1")

	// Unauthenticated: catalog reads and provider callbacks. Callbacks carry
	// their own HMAC signatures instead of user tokens.
	v1.GET("/plans", planController.ListPlans)
	v1.GET("/plans/:id", planController.GetPlan)
	v1.GET("/flows", flowController.ListFlows)
	v1.GET("/flows/:slug", flowController.GetFlow)
	v1.POST("/workflows/callback", workflowController.HandleCallback)
	v1.POST("/webhooks/razorpay", webhookController.HandleProviderWebhook)

	authed := v1.Group("")
	authed.Use(middleware.JWTAuthMiddleware())

	generations := authed.Group("/generations")
	generations.POST("", generationController.CreateGeneration)
	generations.GET("", generationController.ListGenerations)
	generations.GET("/concurrency", generationController.CheckConcurrency)
	generations.GET("/:id", generationController.GetGeneration)
	generations.POST("/:id/cancel", generationController.CancelGeneration)

	subscriptions := authed.Group("/subscriptions")
	subscriptions.GET("/me", subscriptionController.GetMySubscription)
	subscriptions.GET("/me/credits", subscriptionController.CheckCredits)
	subscriptions.GET("/me/transactions", subscriptionController.ListTransactions)

	conversations := authed.Group("/conversations")
	conversations.POST("", conversationController.StartConversation)
	conversations.GET("", conversationController.ListConversations)
	conversations.GET("/:id/messages", conversationController.ListMessages)
	conversations.POST("/:id/messages", conversationController.AppendMessage)
	conversations.DELETE("/:id", conversationController.DeleteConversation)

	authed.POST("/workflows/trigger", workflowController.TriggerWorkflow)
	authed.POST("/payments/checkout", paymentController.CreateCheckout)
	authed.GET("/payments/billing", paymentController.ListBillingHistory)

	admin := authed.Group("/admin")
	admin.Use(middleware.RoleMiddleware("admin"))
	admin.POST("/plans", planController.CreatePlan)
	admin.PUT("/plans/:id", planController.UpdatePlan)
	admin.PUT("/flows", flowController.UpsertFlow)
}
