package repositories

import (
	"context"
	"errors"

	"martylabs/internal/models/db_models"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ISubscriptionRepository interface {
	GetActiveByUserID(ctx context.Context, userID string) (*db_models.Subscription, error)
	GetByProviderSubID(ctx context.Context, providerSubID string) (*db_models.Subscription, error)
	Create(ctx context.Context, sub *db_models.Subscription) error
	Update(ctx context.Context, sub *db_models.Subscription) error
	SetStatus(ctx context.Context, subID uuid.UUID, status db_models.SubscriptionStatus) error

	// AdjustBalance applies creditsDelta/usedDelta in one conditional
	// UPDATE. A negative creditsDelta is guarded by credits >= |delta|;
	// credits_used is floored at zero. Returns the row after the change.
	AdjustBalance(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error)

	// RefundForGeneration credits amount back at most once per generation.
	// The lookup and the balance change share one transaction; a repeated
	// call returns the original refund row with applied=false.
	RefundForGeneration(ctx context.Context, subID uuid.UUID, userID string, generationID uuid.UUID, amount int64, reason string) (*db_models.CreditTransaction, bool, error)

	AppendTransaction(ctx context.Context, txn *db_models.CreditTransaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (s *SubscriptionRepository) GetActiveByUserID(ctx context.Context, userID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, db_models.SubStatusActive).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionRepository) GetByProviderSubID(ctx context.Context, providerSubID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("provider_sub_id = ?", providerSubID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

func (s *SubscriptionRepository) Update(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Save(sub).Error
}

func (s *SubscriptionRepository) SetStatus(ctx context.Context, subID uuid.UUID, status db_models.SubscriptionStatus) error {
	return s.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", subID).
		Update("status", status).Error
}

func (s *SubscriptionRepository) AdjustBalance(ctx context.Context, subID uuid.UUID, creditsDelta, usedDelta int64) (*db_models.Subscription, error) {
	var sub db_models.Subscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&db_models.Subscription{}).Where("id = ?", subID)
		if creditsDelta < 0 {
			q = q.Where("credits >= ?", -creditsDelta)
		}

		res := q.Updates(map[string]interface{}{
			"credits":      gorm.Expr("credits + ?", creditsDelta),
			"credits_used": gorm.Expr("GREATEST(credits_used + ?, 0)", usedDelta),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if creditsDelta < 0 {
				return utils.ErrInsufficientCredits
			}
			return utils.ErrRecordNotFound
		}

		return tx.First(&sub, "id = ?", subID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriptionRepository) RefundForGeneration(ctx context.Context, subID uuid.UUID, userID string, generationID uuid.UUID, amount int64, reason string) (*db_models.CreditTransaction, bool, error) {
	var txn db_models.CreditTransaction
	applied := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.CreditTransaction
		err := tx.
			Where("generation_id = ? AND type = ?", generationID, db_models.TxnRefund).
			First(&existing).Error
		if err == nil {
			txn = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Model(&db_models.Subscription{}).
			Where("id = ?", subID).
			Updates(map[string]interface{}{
				"credits":      gorm.Expr("credits + ?", amount),
				"credits_used": gorm.Expr("GREATEST(credits_used - ?, 0)", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrRecordNotFound
		}

		var sub db_models.Subscription
		if err := tx.First(&sub, "id = ?", subID).Error; err != nil {
			return err
		}

		genID := generationID
		txn = db_models.CreditTransaction{
			SubscriptionID: subID,
			UserID:         userID,
			Type:           db_models.TxnRefund,
			Amount:         amount,
			BalanceAfter:   sub.Credits,
			Description:    reason,
			GenerationID:   &genID,
		}
		if err := tx.Create(&txn).Error; err != nil {
			// The partial unique index catches a concurrent refund.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrDuplicateEvent
			}
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &txn, applied, nil
}

func (s *SubscriptionRepository) AppendTransaction(ctx context.Context, txn *db_models.CreditTransaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

func (s *SubscriptionRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]db_models.CreditTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var txns []db_models.CreditTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
