package numgen

import (
	"testing"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	gen := New()

	for i := 0; i < 100; i++ {
		savings, err := gen.Generate(domain.AccountTypeSavings)
		require.NoError(t, err)
		require.Len(t, savings, 10)
		require.Equal(t, "53", savings[:2])
		requireDigits(t, savings)

		checking, err := gen.Generate(domain.AccountTypeChecking)
		require.NoError(t, err)
		require.Len(t, checking, 10)
		require.Equal(t, "33", checking[:2])
		requireDigits(t, checking)
	}
}

func requireDigits(t *testing.T, s string) {
	t.Helper()
	for _, ch := range s {
		require.True(t, ch >= '0' && ch <= '9', "unexpected character %q in %q", ch, s)
	}
}
