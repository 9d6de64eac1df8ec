package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/retail-ledger/internal/domain"
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
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(
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
	)
	if err != nil {
		if mapped := mapClientUniqueViolation(err); mapped != nil {
			return domain.Client{}, mapped
		}
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Client{}, fmt.Errorf("create client id: %w", err)
	}

	client.ID = id
	return client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client domain.Client) (domain.Client, error) {
	const query = `
UPDATE clients
SET identification_kind = ?,
    identification_number = ?,
    given_name = ?,
    surname = ?,
    email = ?,
    birth_date = ?,
    updated_at = ?
WHERE id = ?`

	result, err := r.db.ExecContext(
		ctx,
		query,
		client.IdentificationKind,
		client.IdentificationNumber,
		client.GivenName,
		client.Surname,
		client.Email,
		client.BirthDate,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		if mapped := mapClientUniqueViolation(err); mapped != nil {
			return domain.Client{}, mapped
		}
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
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
	client, err := scanClient(r.db.QueryRowContext(ctx, clientSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrRecordNotFound
		}
		return domain.Client{}, fmt.Errorf("find client by id: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (domain.Client, error) {
	client, err := scanClient(r.db.QueryRowContext(ctx, clientSelect+` WHERE email = ?`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrRecordNotFound
		}
		return domain.Client{}, fmt.Errorf("find client by email: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clients WHERE identification_number = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, identificationNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check identification number: %w", err)
	}

	return exists, nil
}

func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clients WHERE email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}

	return exists, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, clientSelect+` ORDER BY id`)
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

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		client domain.Client
		kind   string
	)

	if err := row.Scan(
		&client.ID,
		&kind,
		&client.IdentificationNumber,
		&client.GivenName,
		&client.Surname,
		&client.Email,
		&client.BirthDate,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return domain.Client{}, err
	}

	client.IdentificationKind = domain.IdentificationKind(kind)
	return client, nil
}

func mapClientUniqueViolation(err error) error {
	if !isUniqueViolation(err) {
		return nil
	}
	if uniqueViolationColumn(err) == "email" {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateIdentification
}
