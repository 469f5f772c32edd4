package memory

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

// SnapshotRepository is the no-op mirror used when no database is
// configured; the in-memory registry is then the only state.
type SnapshotRepository struct{}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

func (r *SnapshotRepository) SaveCustomer(_ context.Context, _ domain.CustomerSnapshot) error {
	return nil
}

func (r *SnapshotRepository) SaveAccount(_ context.Context, _ domain.AccountSnapshot) error {
	return nil
}

func (r *SnapshotRepository) DeleteAccount(_ context.Context, _ string) error {
	return nil
}

func (r *SnapshotRepository) LoadCustomers(_ context.Context) ([]domain.CustomerSnapshot, error) {
	return nil, nil
}

func (r *SnapshotRepository) LoadAccounts(_ context.Context) ([]domain.AccountSnapshot, error) {
	return nil, nil
}
