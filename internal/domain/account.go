package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// NumberPrefix returns the two-digit prefix every account number of this
// type starts with.
func (t AccountType) NumberPrefix() string {
	if t == AccountTypeChecking {
		return "33"
	}
	return "53"
}

func (t AccountType) Valid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusCancelled AccountStatus = "CANCELLED"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusCancelled:
		return true
	}
	return false
}

type Account struct {
	ID        int64
	ClientID  int64
	Type      AccountType
	Number    string
	Status    AccountStatus
	Balance   decimal.Decimal
	GMFExempt bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// CanCancel reports whether the account may transition to CANCELLED.
// Only a zero-balance account can be cancelled.
func (a Account) CanCancel() bool {
	return a.Balance.IsZero()
}

func (a *Account) PrepareForInsert(now time.Time) {
	a.CreatedAt = now
	a.UpdatedAt = now
}

func (a *Account) PrepareForUpdate(now time.Time) {
	a.UpdatedAt = now
}
