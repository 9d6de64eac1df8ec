package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	client_id,
	account_type,
	account_number,
	status,
	balance,
	gmf_exempt,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ClientID,
		account.Type,
		account.Number,
		account.Status,
		account.Balance.StringFixed(2),
		account.GMFExempt,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateAccountNumber
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"clientId": account.ClientID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET status = $2,
    balance = $3,
    gmf_exempt = $4,
    updated_at = $5
WHERE id = $1`

	result, err := r.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Status,
		account.Balance.StringFixed(2),
		account.GMFExempt,
		account.UpdatedAt,
	)
	if err != nil {
		logger.Error("account repository update failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	return account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = accountSelect + ` WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("find account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByNumber(ctx context.Context, number string) (domain.Account, error) {
	const query = accountSelect + ` WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("find account by number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}

	return exists, nil
}

func (r *AccountRepository) FindByClientID(ctx context.Context, clientID int64) ([]domain.Account, error) {
	const query = accountSelect + ` WHERE client_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list accounts by client: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	const query = accountSelect + ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

const accountSelect = `
SELECT id, client_id, account_type, account_number, status, balance, gmf_exempt, created_at, updated_at
FROM accounts`

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account     domain.Account
		accountType string
		status      string
		balance     string
	)

	if err := row.Scan(
		&account.ID,
		&account.ClientID,
		&accountType,
		&account.Number,
		&status,
		&balance,
		&account.GMFExempt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}

	account.Type = domain.AccountType(accountType)
	account.Status = domain.AccountStatus(status)
	account.Balance = parsed
	return account, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}
