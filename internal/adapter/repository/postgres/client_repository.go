package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/lib/pq"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	const query = `
INSERT INTO clients (
	identification_kind,
	identification_number,
	given_name,
	surname,
	email,
	birth_date,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(
		ctx,
		query,
		client.IdentificationKind,
		client.IdentificationNumber,
		client.GivenName,
		client.Surname,
		client.Email,
		client.BirthDate,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&id); err != nil {
		if mapped := mapClientUniqueViolation(err); mapped != nil {
			return domain.Client{}, mapped
		}
		logger.Error("client repository create failed", err, nil)
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	client.ID = id
	return client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client domain.Client) (domain.Client, error) {
	const query = `
UPDATE clients
SET identification_kind = $2,
    identification_number = $3,
    given_name = $4,
    surname = $5,
    email = $6,
    birth_date = $7,
    updated_at = $8
WHERE id = $1`

	result, err := r.db.ExecContext(
		ctx,
		query,
		client.ID,
		client.IdentificationKind,
		client.IdentificationNumber,
		client.GivenName,
		client.Surname,
		client.Email,
		client.BirthDate,
		client.UpdatedAt,
	)
	if err != nil {
		if mapped := mapClientUniqueViolation(err); mapped != nil {
			return domain.Client{}, mapped
		}
		logger.Error("client repository update failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return domain.Client{}, fmt.Errorf("update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Client{}, fmt.Errorf("update client rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Client{}, domain.ErrRecordNotFound
	}

	return client, nil
}

func (r *ClientRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		logger.Error("client repository delete failed", err, logger.Fields{
			"clientId": id,
		})
		return fmt.Errorf("delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete client rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (domain.Client, error) {
	const query = clientSelect + ` WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrRecordNotFound
		}
		return domain.Client{}, fmt.Errorf("find client by id: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (domain.Client, error) {
	const query = clientSelect + ` WHERE email = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrRecordNotFound
		}
		return domain.Client{}, fmt.Errorf("find client by email: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clients WHERE identification_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, identificationNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check identification number: %w", err)
	}

	return exists, nil
}

func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}

	return exists, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	const query = clientSelect + ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

const clientSelect = `
SELECT id, identification_kind, identification_number, given_name, surname, email, birth_date, created_at, updated_at
FROM clients`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		client    domain.Client
		kind      string
		birthDate time.Time
	)

	if err := row.Scan(
		&client.ID,
		&kind,
		&client.IdentificationNumber,
		&client.GivenName,
		&client.Surname,
		&client.Email,
		&birthDate,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return domain.Client{}, err
	}

	client.IdentificationKind = domain.IdentificationKind(kind)
	client.BirthDate = birthDate
	return client, nil
}

func mapClientUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != "23505" {
		return nil
	}

	if strings.Contains(pqErr.Constraint, "email") {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateIdentification
}
