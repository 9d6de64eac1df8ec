package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

// TransactionRepository persists transaction records. The three Create
// variants apply the balance effect and insert the record inside one unit of
// work: either the touched balances and the record all become visible, or
// none do. There are no update or delete operations; a persisted transaction
// is immutable.
type TransactionRepository interface {
	CreateDeposit(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	CreateWithdrawal(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	CreateTransfer(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	FindByID(ctx context.Context, id int64) (domain.Transaction, error)
	FindAllByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	FindAll(ctx context.Context) ([]domain.Transaction, error)
}
