package services

import (
	"context"
	"time"

	"martylabs/internal/infra"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"

	"github.com/google/uuid"
)

// Mock SubscriptionRepository
type mockSubscriptionRepository struct {
	repositories.ISubscriptionRepository
	getActiveByUserIDFunc   func(ctx context.Context, userID string) (*db_models.Subscription, error)
	getByProviderSubIDFunc  func(ctx context.Context, providerSubID string) (*db_models.Subscription, error)
	createFunc              func(ctx context.Context, sub *db_models.Subscription) error
	updateFunc              func(ctx context.Context, sub *db_models.Subscription) error
	setStatusFunc           func(ctx context.Context, subID uuid.UUID, status db_models.SubscriptionStatus) error
	adjustBalanceFunc       func(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error)
	refundForGenerationFunc func(ctx context.Context, subID uuid.UUID, userID string, generationID uuid.UUID, amount int64, reason string) (*db_models.CreditTransaction, bool, error)
	appendTransactionFunc   func(ctx context.Context, txn *db_models.CreditTransaction) error
	listTransactionsFunc    func(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error)
}

func (m *mockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID string) (*db_models.Subscription, error) {
	if m.getActiveByUserIDFunc != nil {
		return m.getActiveByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByProviderSubID(ctx context.Context, providerSubID string) (*db_models.Subscription, error) {
	if m.getByProviderSubIDFunc != nil {
		return m.getByProviderSubIDFunc(ctx, providerSubID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *db_models.Subscription) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) SetStatus(ctx context.Context, subID uuid.UUID, status db_models.SubscriptionStatus) error {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, subID, status)
	}
	return nil
}

func (m *mockSubscriptionRepository) AdjustBalance(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error) {
	if m.adjustBalanceFunc != nil {
		return m.adjustBalanceFunc(ctx, subID, creditsDelta, usedDelta)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) RefundForGeneration(ctx context.Context, subID uuid.UUID, userID string, generationID uuid.UUID, amount int64, reason string) (*db_models.CreditTransaction, bool, error) {
	if m.refundForGenerationFunc != nil {
		return m.refundForGenerationFunc(ctx, subID, userID, generationID, amount, reason)
	}
	return nil, false, nil
}

func (m *mockSubscriptionRepository) AppendTransaction(ctx context.Context, txn *db_models.CreditTransaction) error {
	if m.appendTransactionFunc != nil {
		return m.appendTransactionFunc(ctx, txn)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error) {
	if m.listTransactionsFunc != nil {
		return m.listTransactionsFunc(ctx, userID, limit)
	}
	return nil, nil
}

// Mock PlanRepository
type mockPlanRepository struct {
	repositories.IPlanRepository
	getByIDFunc   func(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error)
	getByCodeFunc func(ctx context.Context, code string) (*db_models.Plan, error)
	countFunc     func(ctx context.Context) (int64, error)
	createFunc    func(ctx context.Context, plan *db_models.Plan) error
}

func (m *mockPlanRepository) GetByID(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, planID)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	if m.getByCodeFunc != nil {
		return m.getByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockPlanRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *db_models.Plan) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, plan)
	}
	return nil
}

// Mock EventRepository
type mockEventRepository struct {
	repositories.IEventRepository
	appendUsageFunc          func(ctx context.Context, event *db_models.UsageEvent) error
	appendBillingFunc        func(ctx context.Context, event *db_models.BillingEvent) error
	listBillingFunc          func(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error)
	markWebhookProcessedFunc func(ctx context.Context, provider, eventID string) error
}

func (m *mockEventRepository) AppendUsage(ctx context.Context, event *db_models.UsageEvent) error {
	if m.appendUsageFunc != nil {
		return m.appendUsageFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) AppendBilling(ctx context.Context, event *db_models.BillingEvent) error {
	if m.appendBillingFunc != nil {
		return m.appendBillingFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) ListBilling(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error) {
	if m.listBillingFunc != nil {
		return m.listBillingFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockEventRepository) MarkWebhookProcessed(ctx context.Context, provider, eventID string) error {
	if m.markWebhookProcessedFunc != nil {
		return m.markWebhookProcessedFunc(ctx, provider, eventID)
	}
	return nil
}

// Mock GenerationRepository
type mockGenerationRepository struct {
	repositories.IGenerationRepository
	createFunc              func(ctx context.Context, gen *db_models.Generation) error
	getByIDFunc             func(ctx context.Context, id uuid.UUID) (*db_models.Generation, error)
	updateFunc              func(ctx context.Context, gen *db_models.Generation) error
	countActiveByUserFunc   func(ctx context.Context, userID string) (int64, error)
	listStuckProcessingFunc func(ctx context.Context, olderThan time.Duration) ([]db_models.Generation, error)
}

func (m *mockGenerationRepository) Create(ctx context.Context, gen *db_models.Generation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, gen)
	}
	gen.ID = uuid.New()
	return nil
}

func (m *mockGenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Generation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGenerationRepository) Update(ctx context.Context, gen *db_models.Generation) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, gen)
	}
	return nil
}

func (m *mockGenerationRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	if m.countActiveByUserFunc != nil {
		return m.countActiveByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockGenerationRepository) ListStuckProcessing(ctx context.Context, olderThan time.Duration) ([]db_models.Generation, error) {
	if m.listStuckProcessingFunc != nil {
		return m.listStuckProcessingFunc(ctx, olderThan)
	}
	return nil, nil
}

// Mock FlowRepository
type mockFlowRepository struct {
	repositories.IFlowRepository
	getByIDFunc   func(ctx context.Context, flowID uuid.UUID) (*db_models.Flow, error)
	getBySlugFunc func(ctx context.Context, slug string) (*db_models.Flow, error)
}

func (m *mockFlowRepository) GetByID(ctx context.Context, flowID uuid.UUID) (*db_models.Flow, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, flowID)
	}
	return nil, nil
}

func (m *mockFlowRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Flow, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, nil
}

// Mock CreditService
type mockCreditService struct {
	CreditServiceInterface
	getSubscriptionFunc             func(ctx context.Context, userID string) (*db_models.Subscription, error)
	deductFunc                      func(ctx context.Context, userID string, generationID uuid.UUID, service db_models.ServiceType, amount int64) (*response_models.DeductResult, error)
	refundFunc                      func(ctx context.Context, userID string, generationID uuid.UUID, amount int64, reason string) (*response_models.RefundResult, error)
	checkAvailabilityFunc           func(ctx context.Context, userID string, service db_models.ServiceType) (*response_models.CreditAvailability, error)
	createOrRefreshSubscriptionFunc func(ctx context.Context, userID string, planID uuid.UUID, cycle db_models.BillingCycle, refs ProviderRefs) (uuid.UUID, error)
	renewPeriodFunc                 func(ctx context.Context, providerSubID string, periodStartMs, periodEndMs int64, paymentID string) error
	setStatusByProviderSubIDFunc    func(ctx context.Context, providerSubID string, status db_models.SubscriptionStatus) error
}

func (m *mockCreditService) GetSubscription(ctx context.Context, userID string) (*db_models.Subscription, error) {
	if m.getSubscriptionFunc != nil {
		return m.getSubscriptionFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCreditService) Deduct(ctx context.Context, userID string, generationID uuid.UUID, service db_models.ServiceType, amount int64) (*response_models.DeductResult, error) {
	if m.deductFunc != nil {
		return m.deductFunc(ctx, userID, generationID, service, amount)
	}
	return &response_models.DeductResult{}, nil
}

func (m *mockCreditService) Refund(ctx context.Context, userID string, generationID uuid.UUID, amount int64, reason string) (*response_models.RefundResult, error) {
	if m.refundFunc != nil {
		return m.refundFunc(ctx, userID, generationID, amount, reason)
	}
	return &response_models.RefundResult{}, nil
}

func (m *mockCreditService) CheckAvailability(ctx context.Context, userID string, service db_models.ServiceType) (*response_models.CreditAvailability, error) {
	if m.checkAvailabilityFunc != nil {
		return m.checkAvailabilityFunc(ctx, userID, service)
	}
	return &response_models.CreditAvailability{HasCredits: true}, nil
}

func (m *mockCreditService) CreateOrRefreshSubscription(ctx context.Context, userID string, planID uuid.UUID, cycle db_models.BillingCycle, refs ProviderRefs) (uuid.UUID, error) {
	if m.createOrRefreshSubscriptionFunc != nil {
		return m.createOrRefreshSubscriptionFunc(ctx, userID, planID, cycle, refs)
	}
	return uuid.Nil, nil
}

func (m *mockCreditService) RenewPeriod(ctx context.Context, providerSubID string, periodStartMs, periodEndMs int64, paymentID string) error {
	if m.renewPeriodFunc != nil {
		return m.renewPeriodFunc(ctx, providerSubID, periodStartMs, periodEndMs, paymentID)
	}
	return nil
}

func (m *mockCreditService) SetStatusByProviderSubID(ctx context.Context, providerSubID string, status db_models.SubscriptionStatus) error {
	if m.setStatusByProviderSubIDFunc != nil {
		return m.setStatusByProviderSubIDFunc(ctx, providerSubID, status)
	}
	return nil
}

// Mock GenerationService
type mockGenerationService struct {
	GenerationServiceInterface
	getByIDFunc      func(ctx context.Context, id uuid.UUID, withFlow bool) (*db_models.Generation, error)
	updateStatusFunc func(ctx context.Context, req request_models.UpdateGenerationStatusRequest) (*db_models.Generation, error)
}

func (m *mockGenerationService) GetByID(ctx context.Context, id uuid.UUID, withFlow bool) (*db_models.Generation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id, withFlow)
	}
	return nil, nil
}

func (m *mockGenerationService) UpdateStatus(ctx context.Context, req request_models.UpdateGenerationStatusRequest) (*db_models.Generation, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, req)
	}
	return &db_models.Generation{}, nil
}

// Mock workflow engine client
type mockWorkflowClient struct {
	triggerWorkflowFunc func(ctx context.Context, workflowID string, payload infra.WorkflowPayload) (string, error)
}

func (m *mockWorkflowClient) TriggerWorkflow(ctx context.Context, workflowID string, payload infra.WorkflowPayload) (string, error) {
	if m.triggerWorkflowFunc != nil {
		return m.triggerWorkflowFunc(ctx, workflowID, payload)
	}
	return "exec_1", nil
}

// Mock checkout client
type mockCheckoutClient struct {
	createSubscriptionFunc func(data map[string]interface{}) (map[string]interface{}, error)
}

func (m *mockCheckoutClient) CreateSubscription(data map[string]interface{}) (map[string]interface{}, error) {
	if m.createSubscriptionFunc != nil {
		return m.createSubscriptionFunc(data)
	}
	return map[string]interface{}{}, nil
}
