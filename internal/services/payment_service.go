package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"martylabs/internal/infra"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const providerName = "razorpay"

type PaymentServiceInterface interface {
	CreateCheckout(ctx context.Context, userID string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	ProcessEvent(ctx context.Context, event request_models.ProviderEvent) error
	ListBillingHistory(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error)
}

type PaymentService struct {
	planRepo  repositories.IPlanRepository
	creditSvc CreditServiceInterface
	events    repositories.IEventRepository
	checkout  infra.CheckoutClient
	logger    *zap.Logger
}

func NewPaymentService(
	planRepo repositories.IPlanRepository,
	creditSvc CreditServiceInterface,
	events repositories.IEventRepository,
	checkout infra.CheckoutClient,
	logger *zap.Logger,
) PaymentServiceInterface {
	return &PaymentService{
		planRepo:  planRepo,
		creditSvc: creditSvc,
		events:    events,
		checkout:  checkout,
		logger:    logger,
	}
}

// CreateCheckout creates a provider subscription the UI redirects to. The
// user/plan identifiers ride along in notes so webhook events can be
// reconciled back without a provider customer lookup.
func (p *PaymentService) CreateCheckout(ctx context.Context, userID string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	plan, err := p.planRepo.GetByCode(ctx, req.PlanCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		return nil, utils.ErrRecordNotFound
	}

	cycle := db_models.BillingCycle(req.BillingCycle)
	providerPlanID := plan.ProviderPlanID(cycle)
	if providerPlanID == "" {
		return nil, utils.ErrInvalidInput
	}

	totalCount := 12
	if cycle == db_models.CycleAnnual {
		totalCount = 1
	}

	created, err := p.checkout.CreateSubscription(map[string]interface{}{
		"plan_id":         providerPlanID,
		"total_count":     totalCount,
		"customer_notify": 1,
		"notes": map[string]interface{}{
			"user_id":       userID,
			"plan_id":       plan.ID.String(),
			"billing_cycle": string(cycle),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	providerSubID, _ := created["id"].(string)
	shortURL, _ := created["short_url"].(string)

	payload, _ := json.Marshal(created)
	if err := p.events.AppendBilling(ctx, &db_models.BillingEvent{
		UserID:      userID,
		EventType:   "checkout_created",
		PaymentID:   providerSubID,
		AmountMinor: plan.PriceFor(cycle),
		Currency:    plan.Currency,
		Status:      "pending",
		Payload:     payload,
	}); err != nil {
		p.logger.Error("failed to record checkout billing event",
			zap.String("user_id", userID), zap.Error(err))
	}

	return &response_models.CreateCheckoutResponse{
		ProviderSubscriptionID: providerSubID,
		ShortURL:               shortURL,
		AmountMinor:            plan.PriceFor(cycle),
		Currency:               plan.Currency,
	}, nil
}

func (p *PaymentService) ListBillingHistory(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error) {
	events, err := p.events.ListBilling(ctx, userID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return events, nil
}

// ProcessEvent translates one provider webhook event into ledger mutations.
// Duplicate deliveries are claimed-and-skipped before any mutation runs.
func (p *PaymentService) ProcessEvent(ctx context.Context, event request_models.ProviderEvent) error {
	if event.ID != "" {
		if err := p.events.MarkWebhookProcessed(ctx, providerName, event.ID); err != nil {
			if errors.Is(err, utils.ErrDuplicateEvent) {
				p.logger.Warn("duplicate webhook event skipped",
					zap.String("event_id", event.ID),
					zap.String("event", event.Event))
			}
			return err
		}
	}

	switch event.Event {
	case "subscription.authenticated", "subscription.activated":
		return p.activateSubscription(ctx, event)

	case "subscription.charged":
		return p.renewSubscription(ctx, event)

	case "subscription.completed":
		return p.setStatus(ctx, event, db_models.SubStatusCompleted)
	case "subscription.cancelled":
		return p.setStatus(ctx, event, db_models.SubStatusCancelled)
	case "subscription.paused":
		return p.setStatus(ctx, event, db_models.SubStatusPaused)
	case "subscription.halted":
		return p.setStatus(ctx, event, db_models.SubStatusHalted)

	case "payment.failed":
		return p.recordFailedPayment(ctx, event)

	default:
		p.logger.Info("ignoring unhandled webhook event", zap.String("event", event.Event))
		return nil
	}
}

func (p *PaymentService) activateSubscription(ctx context.Context, event request_models.ProviderEvent) error {
	entity := event.Payload.Subscription.Entity

	userID := entity.Notes["user_id"]
	if userID == "" {
		return utils.ErrInvalidInput
	}
	planID, err := uuid.Parse(entity.Notes["plan_id"])
	if err != nil {
		return utils.ErrInvalidInput
	}
	cycle := db_models.BillingCycle(entity.Notes["billing_cycle"])
	if cycle != db_models.CycleAnnual {
		cycle = db_models.CycleMonthly
	}

	_, err = p.creditSvc.CreateOrRefreshSubscription(ctx, userID, planID, cycle, ProviderRefs{
		CustomerID:     entity.CustomerID,
		SubscriptionID: entity.ID,
	})
	if err != nil {
		return err
	}

	p.logger.Info("subscription activated",
		zap.String("user_id", userID),
		zap.String("provider_sub_id", entity.ID))
	return nil
}

func (p *PaymentService) renewSubscription(ctx context.Context, event request_models.ProviderEvent) error {
	entity := event.Payload.Subscription.Entity
	payment := event.Payload.Payment.Entity

	if entity.ID == "" {
		return utils.ErrInvalidInput
	}

	err := p.creditSvc.RenewPeriod(ctx, entity.ID,
		utils.SecondsToMillis(entity.CurrentStart),
		utils.SecondsToMillis(entity.CurrentEnd),
		payment.ID)
	if err != nil {
		return err
	}

	userID := entity.Notes["user_id"]
	payload, _ := json.Marshal(event.Payload)
	if err := p.events.AppendBilling(ctx, &db_models.BillingEvent{
		UserID:      userID,
		EventType:   event.Event,
		PaymentID:   payment.ID,
		AmountMinor: payment.Amount,
		Currency:    payment.Currency,
		Status:      "captured",
		Payload:     payload,
	}); err != nil {
		p.logger.Error("failed to record charge billing event",
			zap.String("user_id", userID), zap.Error(err))
	}

	return nil
}

func (p *PaymentService) setStatus(ctx context.Context, event request_models.ProviderEvent, status db_models.SubscriptionStatus) error {
	entity := event.Payload.Subscription.Entity
	if entity.ID == "" {
		return utils.ErrInvalidInput
	}
	return p.creditSvc.SetStatusByProviderSubID(ctx, entity.ID, status)
}

func (p *PaymentService) recordFailedPayment(ctx context.Context, event request_models.ProviderEvent) error {
	payment := event.Payload.Payment.Entity
	userID := event.Payload.Subscription.Entity.Notes["user_id"]

	payload, _ := json.Marshal(event.Payload)
	if err := p.events.AppendBilling(ctx, &db_models.BillingEvent{
		UserID:      userID,
		EventType:   event.Event,
		PaymentID:   payment.ID,
		AmountMinor: payment.Amount,
		Currency:    payment.Currency,
		Status:      "failed",
		Payload:     payload,
	}); err != nil {
		return utils.ErrDatabaseError
	}

	if err := p.events.AppendUsage(ctx, &db_models.UsageEvent{
		UserID: userID,
		Type:   db_models.UsagePaymentFailed,
	}); err != nil {
		p.logger.Error("failed to append payment_failed usage event",
			zap.String("user_id", userID), zap.Error(err))
	}

	return nil
}
