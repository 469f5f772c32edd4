package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindSavings  AccountKind = "SAVINGS"
	AccountKindChecking AccountKind = "CHECKING"
)

// AccountOptions carries the kind-specific parameters for opening an account.
// MinBalance and InterestRate apply to savings accounts, OverdraftLimit to
// checking accounts; fields irrelevant to the requested kind are ignored.
type AccountOptions struct {
	MinBalance     decimal.Decimal
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

// Account is a balance holder of one of the closed set of kinds. Balance
// mutations go through Deposit/Withdraw under the account's own lock;
// cross-account operations take both locks in account-number order.
type Account struct {
	mu        sync.Mutex
	number    string
	kind      AccountKind
	ownerID   string
	balance   decimal.Decimal
	createdOn time.Time
	history   []*Transaction

	minBalance     decimal.Decimal
	interestRate   decimal.Decimal
	overdraftLimit decimal.Decimal
}

var monthsPerYear = decimal.NewFromInt(12)

func newAccount(number string, kind AccountKind, ownerID string, initialDeposit decimal.Decimal, opts AccountOptions) *Account {
	return &Account{
		number:         number,
		kind:           kind,
		ownerID:        ownerID,
		balance:        initialDeposit,
		createdOn:      time.Now().UTC(),
		minBalance:     opts.MinBalance,
		interestRate:   opts.InterestRate,
		overdraftLimit: opts.OverdraftLimit,
	}
}

func (a *Account) Number() string       { return a.number }
func (a *Account) Kind() AccountKind    { return a.kind }
func (a *Account) OwnerID() string      { return a.ownerID }
func (a *Account) CreatedOn() time.Time { return a.createdOn }

func (a *Account) MinBalance() decimal.Decimal     { return a.minBalance }
func (a *Account) InterestRate() decimal.Decimal   { return a.interestRate }
func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }

// Balance reports the current balance rounded to currency precision. The
// stored value is never rounded between operations.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance.Round(2)
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creditLocked(amount)
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.debitLocked(amount)
}

func (a *Account) creditLocked(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *Account) debitLocked(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	next := a.balance.Sub(amount)
	switch a.kind {
	case AccountKindSavings:
		if next.LessThan(a.minBalance) {
			return ErrMinBalanceViolation
		}
	case AccountKindChecking:
		if next.LessThan(a.overdraftLimit.Neg()) {
			return ErrOverdraftExceeded
		}
	}

	a.balance = next
	return nil
}

// ApplyInterest accrues one month of simple interest on a savings account,
// credits it, and appends a system-generated interest transaction to the
// history so every balance change stays visible in the log. The credited
// amount is rounded to currency precision before posting.
func (a *Account) ApplyInterest() (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.kind != AccountKindSavings {
		return decimal.Zero, ErrInvalidAccountType
	}

	interest := a.balance.Mul(a.interestRate).Div(monthsPerYear).Round(2)
	a.balance = a.balance.Add(interest)
	a.history = append(a.history, newInterestCredit(a, interest))

	return interest, nil
}

// RecordTransaction appends to the account history. The log is append-only;
// callers record a transaction at most once, after a successful execute.
func (a *Account) RecordTransaction(txn *Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recordLocked(txn)
}

func (a *Account) recordLocked(txn *Transaction) {
	a.history = append(a.history, txn)
}

func (a *Account) History() []*Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// IsValidAccountNumber reports whether s is a well-formed account number:
// an S or C prefix followed by decimal digits, at least 8 characters total.
func IsValidAccountNumber(s string) bool {
	if len(s) < 8 {
		return false
	}
	if s[0] != 'S' && s[0] != 'C' {
		return false
	}
	for _, ch := range s[1:] {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
