// Package sqlite implements the repository contracts on an embedded SQLite
// database, used for local development and as the test database. Writes go
// through a single connection, so every unit of work is serialized against
// concurrent mutations of the same accounts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	identification_kind TEXT NOT NULL,
	identification_number TEXT NOT NULL UNIQUE,
	given_name TEXT NOT NULL,
	surname TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	birth_date TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL REFERENCES clients(id),
	account_type TEXT NOT NULL,
	account_number TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL,
	balance TEXT NOT NULL DEFAULT '0.00',
	gmf_exempt INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_client_id ON accounts (client_id);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT,
	origin_account_id INTEGER NOT NULL REFERENCES accounts(id),
	destination_account_id INTEGER REFERENCES accounts(id),
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_origin_account_id ON transactions (origin_account_id);
CREATE INDEX IF NOT EXISTS idx_transactions_destination_account_id ON transactions (destination_account_id);
`

// Open opens (or creates) the database at path and bootstraps the schema.
// Pass ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One connection keeps every write transaction serialized and keeps an
	// in-memory database from vanishing between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}

	return db, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func uniqueViolationColumn(err error) string {
	// sqlite reports "UNIQUE constraint failed: clients.email"
	msg := err.Error()
	idx := strings.LastIndex(msg, ".")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(msg[idx+1:])
}

type rowScanner interface {
	Scan(dest ...any) error
}
