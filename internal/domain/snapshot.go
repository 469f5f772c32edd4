package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshots decouple the persistence mirror from the live registry objects,
// which carry locks and history and cannot cross the storage boundary.
// Transaction history is deliberately absent: the log is in-memory only.

type CustomerSnapshot struct {
	ID             string
	Name           string
	Email          string
	CredentialHash string
	AccountNumbers []string
}

type AccountSnapshot struct {
	Number         string
	Kind           AccountKind
	OwnerID        string
	Balance        decimal.Decimal
	CreatedOn      time.Time
	MinBalance     decimal.Decimal
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

type credentialHasher interface {
	Hash() string
}

func (c *Customer) Snapshot() CustomerSnapshot {
	snap := CustomerSnapshot{
		ID:             c.id,
		Name:           c.name,
		Email:          c.email,
		AccountNumbers: c.AccountNumbers(),
	}
	if h, ok := c.credential.(credentialHasher); ok {
		snap.CredentialHash = h.Hash()
	}
	return snap
}

func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountSnapshot{
		Number:         a.number,
		Kind:           a.kind,
		OwnerID:        a.ownerID,
		Balance:        a.balance,
		CreatedOn:      a.createdOn,
		MinBalance:     a.minBalance,
		InterestRate:   a.interestRate,
		OverdraftLimit: a.overdraftLimit,
	}
}

// RestoreCustomer re-registers a persisted customer, including its linked
// account numbers. Used only during boot, before the bank serves traffic.
func (b *Bank) RestoreCustomer(snap CustomerSnapshot, credential CredentialVerifier) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.customers[snap.ID]; exists {
		return fmt.Errorf("restore customer %s: %w", snap.ID, ErrDuplicateCustomer)
	}

	c := NewCustomer(snap.ID, snap.Name, snap.Email, credential)
	for _, number := range snap.AccountNumbers {
		c.linkAccount(number)
	}
	b.customers[snap.ID] = c
	return nil
}

// RestoreAccount re-registers a persisted account and advances the
// allocation sequence past its number, so freshly opened accounts never
// collide with restored ones.
func (b *Bank) RestoreAccount(snap AccountSnapshot) error {
	if !IsValidAccountNumber(snap.Number) {
		return fmt.Errorf("restore account %q: malformed account number", snap.Number)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.customers[snap.OwnerID]
	if !ok {
		return fmt.Errorf("restore account %s: owner %s: %w", snap.Number, snap.OwnerID, ErrCustomerNotFound)
	}

	a := newAccount(snap.Number, snap.Kind, snap.OwnerID, snap.Balance, AccountOptions{
		MinBalance:     snap.MinBalance,
		InterestRate:   snap.InterestRate,
		OverdraftLimit: snap.OverdraftLimit,
	})
	a.createdOn = snap.CreatedOn

	b.accounts[snap.Number] = a
	c.linkAccount(snap.Number)

	if n, err := strconv.ParseUint(snap.Number[1:], 10, 64); err == nil && n > b.seq {
		b.seq = n
	}
	return nil
}
