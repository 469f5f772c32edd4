package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// EnsureSchema creates the mirror tables inside one transaction. The store
// owns exactly two tables, so schema bootstrap replaces a migrations dir.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	credential_hash TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS accounts (
	number TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	owner_id TEXT NOT NULL REFERENCES customers(id),
	balance NUMERIC(20, 4) NOT NULL,
	min_balance NUMERIC(20, 4) NOT NULL DEFAULT 0,
	interest_rate NUMERIC(10, 6) NOT NULL DEFAULT 0,
	overdraft_limit NUMERIC(20, 4) NOT NULL DEFAULT 0,
	created_on TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for schema bootstrap: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute schema bootstrap: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema bootstrap: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) SaveCustomer(ctx context.Context, snap domain.CustomerSnapshot) error {
	const query = `
INSERT INTO customers (id, name, email, credential_hash, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	credential_hash = EXCLUDED.credential_hash,
	updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, snap.ID, snap.Name, snap.Email, snap.CredentialHash); err != nil {
		return fmt.Errorf("save customer %s: %w", snap.ID, err)
	}
	return nil
}

func (r *SnapshotRepository) SaveAccount(ctx context.Context, snap domain.AccountSnapshot) error {
	const query = `
INSERT INTO accounts (number, kind, owner_id, balance, min_balance, interest_rate, overdraft_limit, created_on, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
ON CONFLICT (number) DO UPDATE SET
	balance = EXCLUDED.balance,
	updated_at = NOW()`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		snap.Number,
		string(snap.Kind),
		snap.OwnerID,
		snap.Balance.String(),
		snap.MinBalance.String(),
		snap.InterestRate.String(),
		snap.OverdraftLimit.String(),
		snap.CreatedOn,
	); err != nil {
		return fmt.Errorf("save account %s: %w", snap.Number, err)
	}
	return nil
}

func (r *SnapshotRepository) DeleteAccount(ctx context.Context, number string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE number = $1`, number); err != nil {
		return fmt.Errorf("delete account %s: %w", number, err)
	}
	return nil
}

func (r *SnapshotRepository) LoadCustomers(ctx context.Context) ([]domain.CustomerSnapshot, error) {
	const query = `SELECT id, name, email, credential_hash FROM customers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	defer rows.Close()

	var out []domain.CustomerSnapshot
	for rows.Next() {
		var snap domain.CustomerSnapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Email, &snap.CredentialHash); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return out, nil
}

// LoadAccounts returns accounts ordered by number. Numbers are allocated
// monotonically, so this is creation order and restoring in sequence
// rebuilds each customer's account set in its original insertion order.
func (r *SnapshotRepository) LoadAccounts(ctx context.Context) ([]domain.AccountSnapshot, error) {
	const query = `
SELECT number, kind, owner_id, balance, min_balance, interest_rate, overdraft_limit, created_on
FROM accounts
ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.AccountSnapshot
	for rows.Next() {
		var (
			snap           domain.AccountSnapshot
			kind           string
			balance        string
			minBalance     string
			interestRate   string
			overdraftLimit string
			createdOn      time.Time
		)
		if err := rows.Scan(&snap.Number, &kind, &snap.OwnerID, &balance, &minBalance, &interestRate, &overdraftLimit, &createdOn); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}

		snap.Kind = domain.AccountKind(kind)
		snap.CreatedOn = createdOn
		if snap.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parse balance for %s: %w", snap.Number, err)
		}
		if snap.MinBalance, err = decimal.NewFromString(minBalance); err != nil {
			return nil, fmt.Errorf("parse min balance for %s: %w", snap.Number, err)
		}
		if snap.InterestRate, err = decimal.NewFromString(interestRate); err != nil {
			return nil, fmt.Errorf("parse interest rate for %s: %w", snap.Number, err)
		}
		if snap.OverdraftLimit, err = decimal.NewFromString(overdraftLimit); err != nil {
			return nil, fmt.Errorf("parse overdraft limit for %s: %w", snap.Number, err)
		}

		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return out, nil
}
