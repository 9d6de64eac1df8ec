package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionDeposit    TransactionKind = "DEPOSIT"
	TransactionWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionTransfer   TransactionKind = "TRANSFER"
)

func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is a fact record: once persisted it is never updated or
// deleted. DestinationAccountID is set only for transfers.
type Transaction struct {
	ID                   int64
	Kind                 TransactionKind
	Amount               decimal.Decimal
	Description          string
	OriginAccountID      int64
	DestinationAccountID *int64
	CreatedAt            time.Time
}

func (t *Transaction) PrepareForInsert(now time.Time) {
	t.CreatedAt = now
}
