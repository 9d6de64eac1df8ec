package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	Update(ctx context.Context, client domain.Client) (domain.Client, error)
	DeleteByID(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (domain.Client, error)
	FindByEmail(ctx context.Context, email string) (domain.Client, error)
	ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]domain.Client, error)
}
