package db_models

import (
	"github.com/google/uuid"
)

type CreditTransactionType string

const (
	TxnDebit  CreditTransactionType = "debit"
	TxnCredit CreditTransactionType = "credit"
	TxnRefund CreditTransactionType = "refund"
	TxnBonus  CreditTransactionType = "bonus"
)

// CreditTransaction is the append-only audit trail of every balance change.
// Rows are never updated or deleted; BalanceAfter snapshots the balance the
// subscription held immediately after the change.
type CreditTransaction struct {
	BaseModel
	SubscriptionID uuid.UUID             `gorm:"index"`
	UserID         string                `gorm:"index"`
	Type           CreditTransactionType `gorm:"index;uniqueIndex:idx_refund_once,where:type = 'refund'"`
	Amount         int64                 // signed: debits negative, credits/refunds positive
	BalanceAfter   int64
	Description    string
	GenerationID   *uuid.UUID `gorm:"index;uniqueIndex:idx_refund_once,where:type = 'refund'"`
}
