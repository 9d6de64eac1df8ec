package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
)

type CreateTransactionRequest struct {
	Kind                 string `json:"kind"`
	Amount               string `json:"amount"`
	Description          string `json:"description,omitempty"`
	OriginAccountID      int64  `json:"originAccountId"`
	DestinationAccountID *int64 `json:"destinationAccountId,omitempty"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	if !domain.TransactionKind(strings.TrimSpace(r.Kind)).Valid() {
		errs = append(errs, "kind must be one of DEPOSIT, WITHDRAWAL, TRANSFER")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if msg := validateMoney(amount, "amount", true); msg != "" {
		errs = append(errs, msg)
	}

	if r.OriginAccountID <= 0 {
		errs = append(errs, "originAccountId is required")
	}
	if r.DestinationAccountID != nil && *r.DestinationAccountID <= 0 {
		errs = append(errs, "destinationAccountId must be a valid account id")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	ID                       int64  `json:"id"`
	Kind                     string `json:"kind"`
	Amount                   string `json:"amount"`
	Description              string `json:"description,omitempty"`
	OriginAccountID          int64  `json:"originAccountId"`
	OriginAccountNumber      string `json:"originAccountNumber"`
	DestinationAccountID     *int64 `json:"destinationAccountId,omitempty"`
	DestinationAccountNumber string `json:"destinationAccountNumber,omitempty"`
	CreatedAt                string `json:"createdAt"`
}

func NewTransactionResponse(txn domain.Transaction, originNumber string, destinationNumber string) TransactionResponse {
	return TransactionResponse{
		ID:                       txn.ID,
		Kind:                     string(txn.Kind),
		Amount:                   txn.Amount.StringFixed(2),
		Description:              txn.Description,
		OriginAccountID:          txn.OriginAccountID,
		OriginAccountNumber:      originNumber,
		DestinationAccountID:     txn.DestinationAccountID,
		DestinationAccountNumber: destinationNumber,
		CreatedAt:                txn.CreatedAt.Format(time.RFC3339),
	}
}
