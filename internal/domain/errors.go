package domain

import "errors"

var ErrRecordNotFound = errors.New("record not found")
var ErrUnderage = errors.New("client must be at least 18 years old")
var ErrDuplicateIdentification = errors.New("identification number already registered")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrHasLinkedAccounts = errors.New("client has linked accounts")
var ErrInactiveAccount = errors.New("origin account is not active")
var ErrInactiveDestination = errors.New("destination account is not active")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrDestinationRequired = errors.New("destination account is required for transfers")
var ErrSameAccountTransfer = errors.New("origin and destination accounts cannot be the same")
var ErrCannotCancelNonZeroBalance = errors.New("account balance must be zero to cancel")
var ErrGenerationExhausted = errors.New("could not generate a unique account number")
var ErrAccountCancelled = errors.New("a cancelled account cannot change status")

// ErrDuplicateAccountNumber signals a single uniqueness collision on insert.
// It never leaves the account service, which retries generation and reports
// ErrGenerationExhausted once the retry bound is spent.
var ErrDuplicateAccountNumber = errors.New("account number already exists")

// IsBusinessError reports whether err is one of the domain rule violations,
// as opposed to an unexpected infrastructure failure.
func IsBusinessError(err error) bool {
	for _, kind := range []error{
		ErrRecordNotFound,
		ErrUnderage,
		ErrDuplicateIdentification,
		ErrDuplicateEmail,
		ErrHasLinkedAccounts,
		ErrInactiveAccount,
		ErrInactiveDestination,
		ErrInsufficientFunds,
		ErrDestinationRequired,
		ErrSameAccountTransfer,
		ErrCannotCancelNonZeroBalance,
		ErrGenerationExhausted,
		ErrAccountCancelled,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
