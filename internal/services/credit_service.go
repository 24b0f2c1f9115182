package services

import (
	"context"
	"fmt"
	"time"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/repositories"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const FreePlanCode = "free"

type ProviderRefs struct {
	CustomerID     string
	SubscriptionID string
	PaymentID      string
}

type CreditServiceInterface interface {
	GetSubscription(ctx context.Context, userID string) (*db_models.Subscription, error)
	EnsureDefaultSubscription(ctx context.Context, userID string) (*db_models.Subscription, error)
	Deduct(ctx context.Context, userID string, generationID uuid.UUID, service db_models.ServiceType, amount int64) (*response_models.DeductResult, error)
	Refund(ctx context.Context, userID string, generationID uuid.UUID, amount int64, reason string) (*response_models.RefundResult, error)
	CheckAvailability(ctx context.Context, userID string, service db_models.ServiceType) (*response_models.CreditAvailability, error)
	CreateOrRefreshSubscription(ctx context.Context, userID string, planID uuid.UUID, cycle db_models.BillingCycle, refs ProviderRefs) (uuid.UUID, error)
	RenewPeriod(ctx context.Context, providerSubID string, periodStartMs, periodEndMs int64, paymentID string) error
	SetStatusByProviderSubID(ctx context.Context, providerSubID string, status db_models.SubscriptionStatus) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error)
}

type CreditService struct {
	subRepo  repositories.ISubscriptionRepository
	planRepo repositories.IPlanRepository
	events   repositories.IEventRepository
	logger   *zap.Logger
}

func NewCreditService(
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	events repositories.IEventRepository,
	logger *zap.Logger,
) CreditServiceInterface {
	return &CreditService{
		subRepo:  subRepo,
		planRepo: planRepo,
		events:   events,
		logger:   logger,
	}
}

func (c *CreditService) GetSubscription(ctx context.Context, userID string) (*db_models.Subscription, error) {
	sub, err := c.subRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrRecordNotFound
	}
	return sub, nil
}

// EnsureDefaultSubscription gives a first-touch user the free-tier row.
func (c *CreditService) EnsureDefaultSubscription(ctx context.Context, userID string) (*db_models.Subscription, error) {
	existing, err := c.subRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return existing, nil
	}

	plan, err := c.planRepo.GetByCode(ctx, FreePlanCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrRecordNotFound
	}

	now := utils.NowUnixMillis()
	sub := &db_models.Subscription{
		UserID:             userID,
		Status:             db_models.SubStatusActive,
		Cycle:              db_models.CycleMonthly,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   time.Now().AddDate(0, 0, 30).UnixMilli(),
	}
	applyPlanSnapshot(sub, plan)

	if err := c.subRepo.Create(ctx, sub); err != nil {
		return nil, utils.ErrDatabaseError
	}

	c.appendTxn(ctx, &db_models.CreditTransaction{
		SubscriptionID: sub.ID,
		UserID:         userID,
		Type:           db_models.TxnBonus,
		Amount:         plan.CreditsPerPeriod,
		BalanceAfter:   sub.Credits,
		Description:    "Free tier signup grant",
	})

	return sub, nil
}

func (c *CreditService) Deduct(ctx context.Context, userID string, generationID uuid.UUID, service db_models.ServiceType, amount int64) (*response_models.DeductResult, error) {
	sub, err := c.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := c.subRepo.AdjustBalance(ctx, sub.ID, -amount, amount)
	if err != nil {
		return nil, err
	}

	genID := generationID
	txn := &db_models.CreditTransaction{
		SubscriptionID: sub.ID,
		UserID:         userID,
		Type:           db_models.TxnDebit,
		Amount:         -amount,
		BalanceAfter:   updated.Credits,
		Description:    fmt.Sprintf("%s generation", service),
		GenerationID:   &genID,
	}
	c.appendTxn(ctx, txn)

	c.logger.Info("credits deducted",
		zap.String("user_id", userID),
		zap.String("generation_id", generationID.String()),
		zap.Int64("amount", amount),
		zap.Int64("remaining", updated.Credits))

	return &response_models.DeductResult{
		Remaining:     updated.Credits,
		TransactionID: txn.ID,
	}, nil
}

func (c *CreditService) Refund(ctx context.Context, userID string, generationID uuid.UUID, amount int64, reason string) (*response_models.RefundResult, error) {
	sub, err := c.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	txn, applied, err := c.subRepo.RefundForGeneration(ctx, sub.ID, userID, generationID, amount, reason)
	if err != nil {
		return nil, err
	}

	if applied {
		genID := generationID
		c.appendUsage(ctx, &db_models.UsageEvent{
			UserID:       userID,
			Type:         db_models.UsageCreditRefund,
			GenerationID: &genID,
		})
		c.logger.Info("credits refunded",
			zap.String("user_id", userID),
			zap.String("generation_id", generationID.String()),
			zap.Int64("amount", amount),
			zap.String("reason", reason))
	} else {
		c.logger.Warn("refund skipped, generation already refunded",
			zap.String("user_id", userID),
			zap.String("generation_id", generationID.String()))
	}

	return &response_models.RefundResult{
		NewBalance:      txn.BalanceAfter,
		TransactionID:   txn.ID,
		AlreadyRefunded: !applied,
	}, nil
}

func (c *CreditService) CheckAvailability(ctx context.Context, userID string, service db_models.ServiceType) (*response_models.CreditAvailability, error) {
	sub, err := c.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	required := sub.ServiceCost(service)
	return &response_models.CreditAvailability{
		HasCredits: sub.Credits >= required,
		Current:    sub.Credits,
		Required:   required,
	}, nil
}

func (c *CreditService) CreateOrRefreshSubscription(ctx context.Context, userID string, planID uuid.UUID, cycle db_models.BillingCycle, refs ProviderRefs) (uuid.UUID, error) {
	plan, err := c.planRepo.GetByID(ctx, planID)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return uuid.Nil, utils.ErrRecordNotFound
	}

	periodDays := 30
	if cycle == db_models.CycleAnnual {
		periodDays = 365
	}
	now := time.Now()

	sub, err := c.subRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	if sub == nil {
		sub = &db_models.Subscription{
			UserID: userID,
			Status: db_models.SubStatusActive,
		}
	}

	sub.Cycle = cycle
	sub.Status = db_models.SubStatusActive
	sub.CurrentPeriodStart = now.UnixMilli()
	sub.CurrentPeriodEnd = now.AddDate(0, 0, periodDays).UnixMilli()
	sub.ProviderCustomerID = refs.CustomerID
	sub.ProviderSubID = refs.SubscriptionID
	sub.LastPaymentID = refs.PaymentID
	sub.CancelAtPeriodEnd = false
	sub.CancelledAt = nil
	applyPlanSnapshot(sub, plan)

	if sub.ID == uuid.Nil {
		err = c.subRepo.Create(ctx, sub)
	} else {
		err = c.subRepo.Update(ctx, sub)
	}
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	c.appendTxn(ctx, &db_models.CreditTransaction{
		SubscriptionID: sub.ID,
		UserID:         userID,
		Type:           db_models.TxnCredit,
		Amount:         plan.CreditsPerPeriod,
		BalanceAfter:   sub.Credits,
		Description:    fmt.Sprintf("%s plan subscription (%s)", plan.Name, cycle),
	})

	return sub.ID, nil
}

// RenewPeriod re-issues the plan's credit grant for a new billing period.
// Period bounds are unix millis; the provider sends seconds. Lookup is by
// provider subscription id so a charge against a halted or paused row still
// lands and reactivates it.
func (c *CreditService) RenewPeriod(ctx context.Context, providerSubID string, periodStartMs, periodEndMs int64, paymentID string) error {
	sub, err := c.subRepo.GetByProviderSubID(ctx, providerSubID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if sub == nil {
		return utils.ErrRecordNotFound
	}

	sub.Credits = sub.TotalCredits
	sub.CreditsUsed = 0
	sub.CurrentPeriodStart = periodStartMs
	sub.CurrentPeriodEnd = periodEndMs
	sub.LastPaymentID = paymentID
	sub.Status = db_models.SubStatusActive

	if err := c.subRepo.Update(ctx, sub); err != nil {
		return utils.ErrDatabaseError
	}

	c.appendTxn(ctx, &db_models.CreditTransaction{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Type:           db_models.TxnCredit,
		Amount:         sub.TotalCredits,
		BalanceAfter:   sub.Credits,
		Description:    fmt.Sprintf("Billing period renewal (payment %s)", paymentID),
	})
	c.appendUsage(ctx, &db_models.UsageEvent{
		UserID: sub.UserID,
		Type:   db_models.UsageSubscriptionRenewed,
	})

	return nil
}

func (c *CreditService) SetStatusByProviderSubID(ctx context.Context, providerSubID string, status db_models.SubscriptionStatus) error {
	sub, err := c.subRepo.GetByProviderSubID(ctx, providerSubID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if sub == nil {
		return utils.ErrRecordNotFound
	}
	if err := c.subRepo.SetStatus(ctx, sub.ID, status); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *CreditService) ListTransactions(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error) {
	txns, err := c.subRepo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return txns, nil
}

// Transaction/usage appends are audit writes; their failure is logged, not
// escalated past the already-applied balance change.
func (c *CreditService) appendTxn(ctx context.Context, txn *db_models.CreditTransaction) {
	if err := c.subRepo.AppendTransaction(ctx, txn); err != nil {
		c.logger.Error("failed to append credit transaction",
			zap.String("user_id", txn.UserID), zap.Error(err))
	}
}

func (c *CreditService) appendUsage(ctx context.Context, event *db_models.UsageEvent) {
	if err := c.events.AppendUsage(ctx, event); err != nil {
		c.logger.Error("failed to append usage event",
			zap.String("user_id", event.UserID), zap.Error(err))
	}
}

func applyPlanSnapshot(sub *db_models.Subscription, plan *db_models.Plan) {
	sub.PlanID = plan.ID
	sub.PlanCode = plan.Code
	sub.PlanTier = plan.Tier
	sub.Credits = plan.CreditsPerPeriod
	sub.CreditsUsed = 0
	sub.TotalCredits = plan.CreditsPerPeriod
	sub.ImageCost = plan.ImageCost
	sub.VideoCost = plan.VideoCost
	sub.TalkingHeadCost = plan.TalkingHeadCost
	sub.MaxConcurrency = plan.MaxConcurrency
	sub.RetentionDays = plan.RetentionDays
	sub.Features = plan.Features
}
