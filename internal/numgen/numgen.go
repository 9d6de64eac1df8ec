// Package numgen produces candidate account numbers: the two-digit type
// prefix followed by eight uniformly random digits. Candidates are not
// guaranteed unique; the caller checks the persisted set and retries.
package numgen

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/api-sage/retail-ledger/internal/domain"
)

const randomDigits = 8

var digitSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(randomDigits), nil)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate returns a 10-character numeric candidate for the given account
// type, e.g. "5300481267" for savings.
func (g *Generator) Generate(accountType domain.AccountType) (string, error) {
	n, err := rand.Int(rand.Reader, digitSpace)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}

	return accountType.NumberPrefix() + fmt.Sprintf("%0*d", randomDigits, n), nil
}
