package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

// SnapshotRepository mirrors the live registry into durable storage. It is
// a best-effort mirror, not the system of record: the in-memory registry
// stays authoritative and write failures never fail the ledger operation.
type SnapshotRepository interface {
	SaveCustomer(ctx context.Context, snap domain.CustomerSnapshot) error
	SaveAccount(ctx context.Context, snap domain.AccountSnapshot) error
	DeleteAccount(ctx context.Context, number string) error
	LoadCustomers(ctx context.Context) ([]domain.CustomerSnapshot, error)
	LoadAccounts(ctx context.Context) ([]domain.AccountSnapshot, error)
}
