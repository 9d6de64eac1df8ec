package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByID(ctx context.Context, id int64) (domain.Account, error)
	FindByNumber(ctx context.Context, number string) (domain.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	FindByClientID(ctx context.Context, clientID int64) ([]domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
}
