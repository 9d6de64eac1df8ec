package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	ClientID       int64  `json:"clientId"`
	AccountType    string `json:"accountType"`
	InitialBalance string `json:"initialBalance,omitempty"`
	GMFExempt      *bool  `json:"gmfExempt,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.ClientID <= 0 {
		errs = append(errs, "clientId is required")
	}

	if !domain.AccountType(strings.TrimSpace(r.AccountType)).Valid() {
		errs = append(errs, "accountType must be one of SAVINGS, CHECKING")
	}

	if raw := strings.TrimSpace(r.InitialBalance); raw != "" {
		if msg := validateMoney(raw, "initialBalance", false); msg != "" {
			errs = append(errs, msg)
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// UpdateAccountRequest is a patch: only the fields present are applied.
// Balance and GMF exemption are the only directly editable fields.
type UpdateAccountRequest struct {
	Balance   *string `json:"balance,omitempty"`
	GMFExempt *bool   `json:"gmfExempt,omitempty"`
}

func (r UpdateAccountRequest) Validate() error {
	var errs []string

	if r.Balance == nil && r.GMFExempt == nil {
		errs = append(errs, "at least one of balance, gmfExempt must be present")
	}

	if r.Balance != nil {
		if msg := validateMoney(strings.TrimSpace(*r.Balance), "balance", false); msg != "" {
			errs = append(errs, msg)
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ChangeAccountStatusRequest struct {
	Status string `json:"status"`
}

func (r ChangeAccountStatusRequest) Validate() error {
	if !domain.AccountStatus(strings.TrimSpace(r.Status)).Valid() {
		return errors.New("status must be one of ACTIVE, INACTIVE, CANCELLED")
	}
	return nil
}

type AccountResponse struct {
	ID            int64  `json:"id"`
	ClientID      int64  `json:"clientId"`
	ClientName    string `json:"clientName,omitempty"`
	AccountType   string `json:"accountType"`
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	Balance       string `json:"balance"`
	GMFExempt     bool   `json:"gmfExempt"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account, clientName string) AccountResponse {
	return AccountResponse{
		ID:            account.ID,
		ClientID:      account.ClientID,
		ClientName:    clientName,
		AccountType:   string(account.Type),
		AccountNumber: account.Number,
		Status:        string(account.Status),
		Balance:       account.Balance.StringFixed(2),
		GMFExempt:     account.GMFExempt,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

// validateMoney checks that raw is a decimal with at most two fractional
// digits; strictlyPositive additionally requires it to be greater than zero,
// otherwise zero is allowed.
func validateMoney(raw string, field string, strictlyPositive bool) string {
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return field + " must be numeric"
	}
	if parsed.Exponent() < -2 {
		return field + " can have at most 2 decimal places"
	}
	if strictlyPositive && parsed.LessThanOrEqual(decimal.Zero) {
		return field + " must be greater than zero"
	}
	if !strictlyPositive && parsed.IsNegative() {
		return field + " cannot be negative"
	}
	return ""
}
