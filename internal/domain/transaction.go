package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TxnStatus string

const (
	TxnStatusPending  TxnStatus = "PENDING"
	TxnStatusDone     TxnStatus = "DONE"
	TxnStatusFailed   TxnStatus = "FAILED"
	TxnStatusReversed TxnStatus = "REVERSED"
)

type TxnKind string

const (
	TxnKindDeposit    TxnKind = "DEPOSIT"
	TxnKindWithdrawal TxnKind = "WITHDRAWAL"
	TxnKindTransfer   TxnKind = "TRANSFER"
	TxnKindInterest   TxnKind = "INTEREST"
)

// TxnResult is the uniform outcome of Execute and Rollback. Underlying
// account violations are translated into it and never propagate past the
// transaction boundary.
type TxnResult struct {
	Success bool
	Message string
}

func txnFailure(format string, args ...any) TxnResult {
	return TxnResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

func txnSuccess(format string, args ...any) TxnResult {
	return TxnResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Transaction is a single unit of balance mutation with an execute/rollback
// contract. The variant set is closed: behavior dispatches on kind. A
// transaction serializes its own Execute/Rollback calls; it is not designed
// for concurrent invocation beyond that.
type Transaction struct {
	mu          sync.Mutex
	id          string
	kind        TxnKind
	timestamp   time.Time
	status      TxnStatus
	description string
	amount      decimal.Decimal

	account *Account // deposit, withdrawal, interest
	from    *Account // transfer
	to      *Account // transfer
	debited bool     // transfer: debit leg completed
}

func NewDeposit(account *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:          uuid.NewString(),
		kind:        TxnKindDeposit,
		timestamp:   time.Now().UTC(),
		status:      TxnStatusPending,
		description: fmt.Sprintf("deposit %s to %s", amount.Round(2), account.Number()),
		amount:      amount,
		account:     account,
	}
}

func NewWithdrawal(account *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:          uuid.NewString(),
		kind:        TxnKindWithdrawal,
		timestamp:   time.Now().UTC(),
		status:      TxnStatusPending,
		description: fmt.Sprintf("withdraw %s from %s", amount.Round(2), account.Number()),
		amount:      amount,
		account:     account,
	}
}

func NewTransfer(from, to *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:          uuid.NewString(),
		kind:        TxnKindTransfer,
		timestamp:   time.Now().UTC(),
		status:      TxnStatusPending,
		description: fmt.Sprintf("transfer %s from %s to %s", amount.Round(2), from.Number(), to.Number()),
		amount:      amount,
		from:        from,
		to:          to,
	}
}

// newInterestCredit is system-generated during interest accrual: the balance
// mutation has already happened under the account lock, so the transaction
// is born DONE and exists only as a history record.
func newInterestCredit(account *Account, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:          uuid.NewString(),
		kind:        TxnKindInterest,
		timestamp:   time.Now().UTC(),
		status:      TxnStatusDone,
		description: fmt.Sprintf("interest credit %s to %s", amount.Round(2), account.Number()),
		amount:      amount,
		account:     account,
	}
}

func (t *Transaction) ID() string           { return t.id }
func (t *Transaction) Kind() TxnKind        { return t.kind }
func (t *Transaction) Timestamp() time.Time { return t.timestamp }
func (t *Transaction) Description() string  { return t.description }

func (t *Transaction) Amount() decimal.Decimal { return t.amount }

// Accounts lists the accounts the transaction touches: one for
// deposit/withdrawal/interest, the source/destination pair for a transfer.
func (t *Transaction) Accounts() []*Account {
	if t.kind == TxnKindTransfer {
		return []*Account{t.from, t.to}
	}
	return []*Account{t.account}
}

func (t *Transaction) Status() TxnStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Execute runs the transaction. It is single-shot: only a PENDING
// transaction can execute, and the outcome transitions it to DONE or FAILED.
func (t *Transaction) Execute() TxnResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != TxnStatusPending {
		return txnFailure("transaction %s already executed (status %s)", t.id, t.status)
	}

	switch t.kind {
	case TxnKindDeposit:
		if err := t.account.Deposit(t.amount); err != nil {
			t.status = TxnStatusFailed
			return txnFailure("deposit failed: %s", err)
		}
		t.account.RecordTransaction(t)
		t.status = TxnStatusDone
		return txnSuccess("deposited %s to %s", t.amount.Round(2), t.account.Number())

	case TxnKindWithdrawal:
		if err := t.account.Withdraw(t.amount); err != nil {
			t.status = TxnStatusFailed
			return txnFailure("withdrawal failed: %s", err)
		}
		t.account.RecordTransaction(t)
		t.status = TxnStatusDone
		return txnSuccess("withdrew %s from %s", t.amount.Round(2), t.account.Number())

	case TxnKindTransfer:
		return t.executeTransfer()

	default:
		t.status = TxnStatusFailed
		return txnFailure("transaction kind %s cannot be executed", t.kind)
	}
}

// executeTransfer runs both legs inside a single critical section spanning
// both accounts, locks taken in account-number order. If the credit leg
// fails after a successful debit, the source is re-credited before the locks
// are released; a failure of that compensation is swallowed and reported in
// the message only, since the primary failure is already being returned.
func (t *Transaction) executeTransfer() TxnResult {
	if t.from == t.to {
		t.status = TxnStatusFailed
		return txnFailure("transfer source and destination are the same account")
	}

	first, second := lockOrder(t.from, t.to)
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := t.from.debitLocked(t.amount); err != nil {
		t.status = TxnStatusFailed
		return txnFailure("transfer debit leg failed: %s", err)
	}
	t.debited = true

	if err := t.to.creditLocked(t.amount); err != nil {
		t.status = TxnStatusFailed
		if compErr := t.from.creditLocked(t.amount); compErr != nil {
			return txnFailure("transfer credit leg failed: %s (compensation also failed: %s)", err, compErr)
		}
		t.debited = false
		return txnFailure("transfer credit leg failed: %s (source account compensated)", err)
	}

	t.from.recordLocked(t)
	t.to.recordLocked(t)
	t.status = TxnStatusDone
	return txnSuccess("transferred %s from %s to %s", t.amount.Round(2), t.from.Number(), t.to.Number())
}

// Rollback compensates a DONE transaction. On success the transaction is
// REVERSED, which is terminal. If the compensating operation would itself
// violate an account rule the rollback fails without mutating anything and
// the status stays DONE.
func (t *Transaction) Rollback() TxnResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != TxnStatusDone {
		return txnFailure("%s: transaction %s has status %s", ErrRollbackIneligible, t.id, t.status)
	}

	switch t.kind {
	case TxnKindDeposit:
		if err := t.account.Withdraw(t.amount); err != nil {
			return txnFailure("rollback failed: %s", err)
		}
		t.status = TxnStatusReversed
		return txnSuccess("reversed deposit of %s to %s", t.amount.Round(2), t.account.Number())

	case TxnKindWithdrawal:
		if err := t.account.Deposit(t.amount); err != nil {
			return txnFailure("rollback failed: %s", err)
		}
		t.status = TxnStatusReversed
		return txnSuccess("reversed withdrawal of %s from %s", t.amount.Round(2), t.account.Number())

	case TxnKindTransfer:
		return t.rollbackTransfer()

	default:
		return txnFailure("transaction kind %s cannot be rolled back", t.kind)
	}
}

// rollbackTransfer mirrors executeTransfer: one critical section over both
// accounts, destination debited first, source credited second. A successful
// first leg is compensated if the second fails, so no partial rollback can
// leave the pair inconsistent.
func (t *Transaction) rollbackTransfer() TxnResult {
	first, second := lockOrder(t.from, t.to)
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := t.to.debitLocked(t.amount); err != nil {
		return txnFailure("rollback debit leg failed: %s", err)
	}
	if err := t.from.creditLocked(t.amount); err != nil {
		if compErr := t.to.creditLocked(t.amount); compErr != nil {
			return txnFailure("rollback credit leg failed: %s (compensation also failed: %s)", err, compErr)
		}
		return txnFailure("rollback credit leg failed: %s (destination account compensated)", err)
	}

	t.status = TxnStatusReversed
	return txnSuccess("reversed transfer of %s from %s to %s", t.amount.Round(2), t.from.Number(), t.to.Number())
}

// lockOrder fixes a global acquisition order for account pairs so that
// concurrent transfers over the same accounts cannot deadlock.
func lockOrder(a, b *Account) (*Account, *Account) {
	if b.number < a.number {
		return b, a
	}
	return a, b
}
