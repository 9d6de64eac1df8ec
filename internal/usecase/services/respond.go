package services

import (
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
)

// failure maps a domain error to the client-facing envelope: business rule
// violations surface their own message, anything else gets the fallback with
// no internal detail.
func failure[T any](fallback string, err error) (commons.Response[T], error) {
	if domain.IsBusinessError(err) {
		return commons.ErrorResponse[T](err.Error()), err
	}
	return commons.ErrorResponse[T](fallback, "unable to process request right now"), err
}
