package services

import (
	"context"
	"testing"

	"martylabs/internal/models/db_models"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func activeSubscription(userID string, credits int64) *db_models.Subscription {
	sub := &db_models.Subscription{
		UserID:          userID,
		Status:          db_models.SubStatusActive,
		PlanTier:        db_models.TierCreator,
		Credits:         credits,
		TotalCredits:    500,
		ImageCost:       1,
		VideoCost:       5,
		TalkingHeadCost: 8,
		MaxConcurrency:  3,
		RetentionDays:   30,
	}
	sub.ID = uuid.New()
	return sub
}

func TestDeduct_RecordsDebitWithBalanceSnapshot(t *testing.T) {
	sub := activeSubscription("user-1", 100)
	genID := uuid.New()

	var recorded *db_models.CreditTransaction
	subRepo := &mockSubscriptionRepository{
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return sub, nil
		},
		adjustBalanceFunc: func(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error) {
			assert.Equal(t, sub.ID, subID)
			assert.Equal(t, int64(-5), creditsDelta)
			assert.Equal(t, int64(5), usedDelta)
			updated := *sub
			updated.Credits = 95
			updated.CreditsUsed = 5
			return &updated, nil
		},
		appendTransactionFunc: func(ctx context.Context, txn *db_models.CreditTransaction) error {
			recorded = txn
			return nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	result, err := svc.Deduct(context.Background(), "user-1", genID, db_models.ServiceVideo, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(95), result.Remaining)

	require.NotNil(t, recorded)
	assert.Equal(t, db_models.TxnDebit, recorded.Type)
	assert.Equal(t, int64(-5), recorded.Amount)
	assert.Equal(t, int64(95), recorded.BalanceAfter)
	require.NotNil(t, recorded.GenerationID)
	assert.Equal(t, genID, *recorded.GenerationID)
}

func TestDeduct_InsufficientCredits(t *testing.T) {
	sub := activeSubscription("user-1", 2)

	subRepo := &mockSubscriptionRepository{
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return sub, nil
		},
		adjustBalanceFunc: func(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error) {
			return nil, utils.ErrInsufficientCredits
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	_, err := svc.Deduct(context.Background(), "user-1", uuid.New(), db_models.ServiceImage, 5)
	assert.ErrorIs(t, err, utils.ErrInsufficientCredits)
}

func TestDeduct_NoActiveSubscription(t *testing.T) {
	svc := NewCreditService(&mockSubscriptionRepository{}, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	_, err := svc.Deduct(context.Background(), "user-1", uuid.New(), db_models.ServiceImage, 1)
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}

func TestRefund_AppliedOncePerGeneration(t *testing.T) {
	sub := activeSubscription("user-1", 95)
	genID := uuid.New()

	refundTxn := &db_models.CreditTransaction{
		SubscriptionID: sub.ID,
		UserID:         "user-1",
		Type:           db_models.TxnRefund,
		Amount:         5,
		BalanceAfter:   100,
		GenerationID:   &genID,
	}

	applied := true
	usageEvents := 0
	subRepo := &mockSubscriptionRepository{
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return sub, nil
		},
		refundForGenerationFunc: func(ctx context.Context, subID uuid.UUID, userID string, generationID uuid.UUID, amount int64, reason string) (*db_models.CreditTransaction, bool, error) {
			wasApplied := applied
			applied = false
			return refundTxn, wasApplied, nil
		},
	}
	events := &mockEventRepository{
		appendUsageFunc: func(ctx context.Context, event *db_models.UsageEvent) error {
			assert.Equal(t, db_models.UsageCreditRefund, event.Type)
			usageEvents++
			return nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, events, zap.NewNop())

	first, err := svc.Refund(context.Background(), "user-1", genID, 5, "Generation failed")
	require.NoError(t, err)
	assert.False(t, first.AlreadyRefunded)
	assert.Equal(t, int64(100), first.NewBalance)

	second, err := svc.Refund(context.Background(), "user-1", genID, 5, "Generation failed")
	require.NoError(t, err)
	assert.True(t, second.AlreadyRefunded)
	assert.Equal(t, int64(100), second.NewBalance)

	assert.Equal(t, 1, usageEvents)
}

func TestEnsureDefaultSubscription_ReturnsExisting(t *testing.T) {
	sub := activeSubscription("user-1", 20)

	created := false
	subRepo := &mockSubscriptionRepository{
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return sub, nil
		},
		createFunc: func(ctx context.Context, s *db_models.Subscription) error {
			created = true
			return nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	got, err := svc.EnsureDefaultSubscription(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.False(t, created)
}

func TestEnsureDefaultSubscription_GrantsFreeTier(t *testing.T) {
	freePlan := &db_models.Plan{
		Code:             FreePlanCode,
		Name:             "Free",
		Tier:             db_models.TierFree,
		CreditsPerPeriod: 20,
		ImageCost:        1,
		MaxConcurrency:   1,
		RetentionDays:    7,
	}
	freePlan.ID = uuid.New()

	var createdSub *db_models.Subscription
	var bonusTxn *db_models.CreditTransaction
	subRepo := &mockSubscriptionRepository{
		createFunc: func(ctx context.Context, s *db_models.Subscription) error {
			s.ID = uuid.New()
			createdSub = s
			return nil
		},
		appendTransactionFunc: func(ctx context.Context, txn *db_models.CreditTransaction) error {
			bonusTxn = txn
			return nil
		},
	}
	planRepo := &mockPlanRepository{
		getByCodeFunc: func(ctx context.Context, code string) (*db_models.Plan, error) {
			assert.Equal(t, FreePlanCode, code)
			return freePlan, nil
		},
	}

	svc := NewCreditService(subRepo, planRepo, &mockEventRepository{}, zap.NewNop())

	sub, err := svc.EnsureDefaultSubscription(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, createdSub)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, db_models.TierFree, sub.PlanTier)
	assert.Equal(t, int64(20), sub.Credits)
	assert.Equal(t, int64(20), sub.TotalCredits)
	assert.Equal(t, freePlan.ID, sub.PlanID)

	require.NotNil(t, bonusTxn)
	assert.Equal(t, db_models.TxnBonus, bonusTxn.Type)
	assert.Equal(t, int64(20), bonusTxn.Amount)
	assert.Equal(t, int64(20), bonusTxn.BalanceAfter)
}

func TestRenewPeriod_ResetsBalanceAndPeriod(t *testing.T) {
	sub := activeSubscription("user-1", 3)
	sub.CreditsUsed = 497
	sub.Status = db_models.SubStatusPastDue
	sub.ProviderSubID = "sub_abc"

	var updated *db_models.Subscription
	var creditTxn *db_models.CreditTransaction
	subRepo := &mockSubscriptionRepository{
		getByProviderSubIDFunc: func(ctx context.Context, providerSubID string) (*db_models.Subscription, error) {
			assert.Equal(t, "sub_abc", providerSubID)
			return sub, nil
		},
		updateFunc: func(ctx context.Context, s *db_models.Subscription) error {
			updated = s
			return nil
		},
		appendTransactionFunc: func(ctx context.Context, txn *db_models.CreditTransaction) error {
			creditTxn = txn
			return nil
		},
	}

	renewed := false
	events := &mockEventRepository{
		appendUsageFunc: func(ctx context.Context, event *db_models.UsageEvent) error {
			assert.Equal(t, db_models.UsageSubscriptionRenewed, event.Type)
			assert.Equal(t, "user-1", event.UserID)
			renewed = true
			return nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, events, zap.NewNop())

	err := svc.RenewPeriod(context.Background(), "sub_abc", 1700000000000, 1702592000000, "pay_123")
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, int64(500), updated.Credits)
	assert.Equal(t, int64(0), updated.CreditsUsed)
	assert.Equal(t, int64(1700000000000), updated.CurrentPeriodStart)
	assert.Equal(t, int64(1702592000000), updated.CurrentPeriodEnd)
	assert.Equal(t, "pay_123", updated.LastPaymentID)
	assert.Equal(t, db_models.SubStatusActive, updated.Status)

	require.NotNil(t, creditTxn)
	assert.Equal(t, db_models.TxnCredit, creditTxn.Type)
	assert.Equal(t, int64(500), creditTxn.Amount)
	assert.Equal(t, "user-1", creditTxn.UserID)
	assert.True(t, renewed)
}

// A charge can arrive for a row that was halted or paused after failed
// payments. The grant must still land and flip the row back to active.
func TestRenewPeriod_ReactivatesHaltedSubscription(t *testing.T) {
	sub := activeSubscription("user-1", 0)
	sub.CreditsUsed = 500
	sub.Status = db_models.SubStatusHalted
	sub.ProviderSubID = "sub_halted"

	var updated *db_models.Subscription
	subRepo := &mockSubscriptionRepository{
		getByProviderSubIDFunc: func(ctx context.Context, providerSubID string) (*db_models.Subscription, error) {
			if providerSubID == "sub_halted" {
				return sub, nil
			}
			return nil, nil
		},
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return nil, nil
		},
		updateFunc: func(ctx context.Context, s *db_models.Subscription) error {
			updated = s
			return nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	err := svc.RenewPeriod(context.Background(), "sub_halted", 1700000000000, 1702592000000, "pay_retry")
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, db_models.SubStatusActive, updated.Status)
	assert.Equal(t, int64(500), updated.Credits)
	assert.Equal(t, int64(0), updated.CreditsUsed)
	assert.Equal(t, "pay_retry", updated.LastPaymentID)
}

func TestRenewPeriod_UnknownProviderSubID(t *testing.T) {
	svc := NewCreditService(&mockSubscriptionRepository{}, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	err := svc.RenewPeriod(context.Background(), "sub_missing", 1700000000000, 1702592000000, "pay_1")
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}

func TestCheckAvailability_UsesServiceCost(t *testing.T) {
	sub := activeSubscription("user-1", 4)

	subRepo := &mockSubscriptionRepository{
		getActiveByUserIDFunc: func(ctx context.Context, userID string) (*db_models.Subscription, error) {
			return sub, nil
		},
	}

	svc := NewCreditService(subRepo, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	avail, err := svc.CheckAvailability(context.Background(), "user-1", db_models.ServiceVideo)
	require.NoError(t, err)
	assert.False(t, avail.HasCredits)
	assert.Equal(t, int64(4), avail.Current)
	assert.Equal(t, int64(5), avail.Required)

	avail, err = svc.CheckAvailability(context.Background(), "user-1", db_models.ServiceImage)
	require.NoError(t, err)
	assert.True(t, avail.HasCredits)
	assert.Equal(t, int64(1), avail.Required)
}

func TestSetStatusByProviderSubID_NotFound(t *testing.T) {
	svc := NewCreditService(&mockSubscriptionRepository{}, &mockPlanRepository{}, &mockEventRepository{}, zap.NewNop())

	err := svc.SetStatusByProviderSubID(context.Background(), "sub_missing", db_models.SubStatusCancelled)
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}
