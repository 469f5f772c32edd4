package domain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Bank owns the customer and account registries and mediates every
// open/close. Account numbers come from a bank-owned monotonic sequence
// shared across kinds, so numbers never collide within a bank.
type Bank struct {
	mu        sync.RWMutex
	name      string
	customers map[string]*Customer
	accounts  map[string]*Account
	seq       uint64
}

var (
	registryMu sync.Mutex
	registry   []*Bank
)

func NewBank(name string) *Bank {
	b := &Bank{
		name:      name,
		customers: make(map[string]*Customer),
		accounts:  make(map[string]*Account),
	}

	registryMu.Lock()
	registry = append(registry, b)
	registryMu.Unlock()

	return b
}

// AllBanks lists every bank created in this process, in creation order.
func AllBanks() []*Bank {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Bank, len(registry))
	copy(out, registry)
	return out
}

func (b *Bank) Name() string { return b.name }

func (b *Bank) AddCustomer(c *Customer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.customers[c.ID()]; exists {
		return fmt.Errorf("add customer %s: %w", c.ID(), ErrDuplicateCustomer)
	}
	b.customers[c.ID()] = c
	return nil
}

func (b *Bank) GetCustomer(id string) (*Customer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.customers[id]
	if !ok {
		return nil, fmt.Errorf("get customer %s: %w", id, ErrCustomerNotFound)
	}
	return c, nil
}

func (b *Bank) FindAccount(number string) (*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	a, ok := b.accounts[number]
	if !ok {
		return nil, fmt.Errorf("find account %s: %w", number, ErrAccountNotFound)
	}
	return a, nil
}

// Accounts lists every registered account ordered by account number, which
// is also creation order.
func (b *Bank) Accounts() []*Account {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out
}

// AccountsOf returns the customer's accounts in the order they were linked.
func (b *Bank) AccountsOf(customerID string) ([]*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("accounts of %s: %w", customerID, ErrCustomerNotFound)
	}

	accounts := make([]*Account, 0, len(c.accountNumbers))
	for _, number := range c.accountNumbers {
		if a, ok := b.accounts[number]; ok {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

// OpenAccount creates and registers an account for an existing customer.
// The kind is validated before the sequence is touched, so a rejected open
// never consumes an account number.
func (b *Bank) OpenAccount(customerID string, kind AccountKind, initialDeposit decimal.Decimal, opts AccountOptions) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("open account for %s: %w", customerID, ErrCustomerNotFound)
	}

	var prefix string
	switch kind {
	case AccountKindSavings:
		prefix = "S"
	case AccountKindChecking:
		prefix = "C"
	default:
		return nil, fmt.Errorf("open account for %s: %w: %q", customerID, ErrInvalidAccountType, kind)
	}

	if initialDeposit.Sign() < 0 {
		return nil, fmt.Errorf("open account for %s: initial deposit cannot be negative: %w", customerID, ErrInvalidAmount)
	}

	b.seq++
	number := fmt.Sprintf("%s%07d", prefix, b.seq)

	a := newAccount(number, kind, customerID, initialDeposit, opts)
	b.accounts[number] = a
	c.linkAccount(number)

	return a, nil
}

// CloseAccount removes an account from the registry and from its owner's
// set. The balance must be exactly zero; the check runs on the unrounded
// value so no rounding residue can slip through.
func (b *Bank) CloseAccount(number string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return fmt.Errorf("close account %s: %w", number, ErrAccountNotFound)
	}

	a.mu.Lock()
	zero := a.balance.IsZero()
	a.mu.Unlock()
	if !zero {
		return fmt.Errorf("close account %s: %w", number, ErrNonZeroBalance)
	}

	if c, ok := b.customers[a.OwnerID()]; ok {
		c.unlinkAccount(number)
	}
	delete(b.accounts, number)
	return nil
}

// ApplyInterest sweeps every account, accrues monthly interest on the
// savings ones, and returns the total credited, rounded to currency
// precision. It never fails; non-savings accounts are skipped.
func (b *Bank) ApplyInterest() decimal.Decimal {
	b.mu.RLock()
	accounts := make([]*Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		accounts = append(accounts, a)
	}
	b.mu.RUnlock()

	total := decimal.Zero
	for _, a := range accounts {
		if a.Kind() != AccountKindSavings {
			continue
		}
		interest, err := a.ApplyInterest()
		if err != nil {
			continue
		}
		total = total.Add(interest)
	}
	return total.Round(2)
}
