package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateDeposit(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	return r.post(ctx, txn, func(tx *sql.Tx) error {
		origin, err := lockAccount(ctx, tx, txn.OriginAccountID)
		if err != nil {
			return err
		}
		if origin.status != string(domain.AccountStatusActive) {
			return domain.ErrInactiveAccount
		}

		return updateBalance(ctx, tx, txn.OriginAccountID, origin.balance.Add(txn.Amount), txn.CreatedAt)
	})
}

func (r *TransactionRepository) CreateWithdrawal(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	return r.post(ctx, txn, func(tx *sql.Tx) error {
		origin, err := lockAccount(ctx, tx, txn.OriginAccountID)
		if err != nil {
			return err
		}
		if origin.status != string(domain.AccountStatusActive) {
			return domain.ErrInactiveAccount
		}
		if origin.balance.LessThan(txn.Amount) {
			return domain.ErrInsufficientFunds
		}

		return updateBalance(ctx, tx, txn.OriginAccountID, origin.balance.Sub(txn.Amount), txn.CreatedAt)
	})
}

func (r *TransactionRepository) CreateTransfer(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if txn.DestinationAccountID == nil {
		return domain.Transaction{}, domain.ErrDestinationRequired
	}
	destinationID := *txn.DestinationAccountID

	return r.post(ctx, txn, func(tx *sql.Tx) error {
		// Rows are locked in ascending id order so two concurrent transfers
		// touching the same pair of accounts cannot deadlock.
		first, second := txn.OriginAccountID, destinationID
		if second < first {
			first, second = second, first
		}

		locked := map[int64]lockedAccount{}
		for _, id := range []int64{first, second} {
			account, err := lockAccount(ctx, tx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}

		origin := locked[txn.OriginAccountID]
		destination := locked[destinationID]
		if origin.status != string(domain.AccountStatusActive) {
			return domain.ErrInactiveAccount
		}
		if destination.status != string(domain.AccountStatusActive) {
			return domain.ErrInactiveDestination
		}
		if origin.balance.LessThan(txn.Amount) {
			return domain.ErrInsufficientFunds
		}

		if err := updateBalance(ctx, tx, txn.OriginAccountID, origin.balance.Sub(txn.Amount), txn.CreatedAt); err != nil {
			return err
		}
		return updateBalance(ctx, tx, destinationID, destination.balance.Add(txn.Amount), txn.CreatedAt)
	})
}

// post runs the balance mutation and the record insert in one database
// transaction: both become visible together or not at all.
func (r *TransactionRepository) post(ctx context.Context, txn domain.Transaction, mutate func(tx *sql.Tx) error) (domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = mutate(tx); err != nil {
		return domain.Transaction{}, err
	}

	const query = `
INSERT INTO transactions (
	kind,
	amount,
	description,
	origin_account_id,
	destination_account_id,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	var id int64
	if err = tx.QueryRowContext(
		ctx,
		query,
		txn.Kind,
		txn.Amount.StringFixed(2),
		nullableString(txn.Description),
		txn.OriginAccountID,
		nullableID(txn.DestinationAccountID),
		txn.CreatedAt,
	).Scan(&id); err != nil {
		logger.Error("transaction repository insert failed", err, logger.Fields{
			"kind":            txn.Kind,
			"originAccountId": txn.OriginAccountID,
		})
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("commit ledger transaction: %w", err)
	}

	txn.ID = id
	return txn, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (domain.Transaction, error) {
	const query = transactionSelect + ` WHERE id = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("find transaction by id: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) FindAllByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	const query = transactionSelect + `
WHERE origin_account_id = $1 OR destination_account_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by account: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	const query = transactionSelect + ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

type lockedAccount struct {
	status  string
	balance decimal.Decimal
}

func lockAccount(ctx context.Context, tx *sql.Tx, id int64) (lockedAccount, error) {
	const query = `SELECT status, balance FROM accounts WHERE id = $1 FOR UPDATE`

	var (
		status  string
		balance string
	)
	if err := tx.QueryRowContext(ctx, query, id).Scan(&status, &balance); err != nil {
		if err == sql.ErrNoRows {
			return lockedAccount{}, domain.ErrRecordNotFound
		}
		return lockedAccount{}, fmt.Errorf("lock account %d: %w", id, err)
	}

	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return lockedAccount{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}

	return lockedAccount{status: status, balance: parsed}, nil
}

func updateBalance(ctx context.Context, tx *sql.Tx, id int64, balance decimal.Decimal, now time.Time) error {
	const query = `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, id, balance.StringFixed(2), now); err != nil {
		return fmt.Errorf("update balance of account %d: %w", id, err)
	}

	return nil
}

const transactionSelect = `
SELECT id, kind, amount, description, origin_account_id, destination_account_id, created_at
FROM transactions`

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		txn         domain.Transaction
		kind        string
		amount      string
		description sql.NullString
		destination sql.NullInt64
	)

	if err := row.Scan(
		&txn.ID,
		&kind,
		&amount,
		&description,
		&txn.OriginAccountID,
		&destination,
		&txn.CreatedAt,
	); err != nil {
		return domain.Transaction{}, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.Amount = parsed
	if description.Valid {
		txn.Description = description.String
	}
	if destination.Valid {
		value := destination.Int64
		txn.DestinationAccountID = &value
	}
	return txn, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullableID(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}
