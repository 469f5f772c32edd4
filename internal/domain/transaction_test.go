package domain

import (
	"strings"
	"testing"
)

func TestDepositExecuteTransitionsAndRecords(t *testing.T) {
	a := newCheckingForTest("100", "0")
	txn := NewDeposit(a, dec("50"))

	if txn.Status() != TxnStatusPending {
		t.Fatalf("new transaction should be PENDING, got %s", txn.Status())
	}

	result := txn.Execute()
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Message)
	}
	if txn.Status() != TxnStatusDone {
		t.Fatalf("expected DONE, got %s", txn.Status())
	}
	if !a.Balance().Equal(dec("150")) {
		t.Fatalf("expected balance 150, got %s", a.Balance())
	}
	if len(a.History()) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(a.History()))
	}
}

func TestExecuteIsSingleShot(t *testing.T) {
	a := newCheckingForTest("100", "0")
	txn := NewDeposit(a, dec("50"))

	if result := txn.Execute(); !result.Success {
		t.Fatalf("first execute failed: %s", result.Message)
	}
	if result := txn.Execute(); result.Success {
		t.Fatal("second execute should fail")
	}
	if !a.Balance().Equal(dec("150")) {
		t.Fatalf("second execute mutated balance: %s", a.Balance())
	}
	if txn.Status() != TxnStatusDone {
		t.Fatalf("status changed by rejected execute: %s", txn.Status())
	}
}

func TestWithdrawalExecuteFailureMarksFailed(t *testing.T) {
	a := newSavingsForTest("1200", "1000", "0.06")
	txn := NewWithdrawal(a, dec("500"))

	result := txn.Execute()
	if result.Success {
		t.Fatal("withdrawal breaching min balance should fail")
	}
	if txn.Status() != TxnStatusFailed {
		t.Fatalf("expected FAILED, got %s", txn.Status())
	}
	if !strings.Contains(result.Message, ErrMinBalanceViolation.Error()) {
		t.Fatalf("message should carry the underlying reason, got %q", result.Message)
	}
	if len(a.History()) != 0 {
		t.Fatal("failed execute must not be recorded in history")
	}
	if !a.Balance().Equal(dec("1200")) {
		t.Fatalf("failed execute mutated balance: %s", a.Balance())
	}
}

func TestRollbackRestoresBalance(t *testing.T) {
	a := newCheckingForTest("100", "0")
	txn := NewDeposit(a, dec("40"))

	if result := txn.Execute(); !result.Success {
		t.Fatalf("execute: %s", result.Message)
	}
	if result := txn.Rollback(); !result.Success {
		t.Fatalf("rollback: %s", result.Message)
	}
	if !a.Balance().Equal(dec("100")) {
		t.Fatalf("rollback did not restore balance: %s", a.Balance())
	}
	if txn.Status() != TxnStatusReversed {
		t.Fatalf("expected REVERSED, got %s", txn.Status())
	}
	if len(a.History()) != 1 {
		t.Fatalf("rollback must not append history; got %d entries", len(a.History()))
	}
}

func TestRollbackIneligibleStates(t *testing.T) {
	a := newCheckingForTest("100", "0")

	pending := NewDeposit(a, dec("10"))
	if result := pending.Rollback(); result.Success {
		t.Fatal("rollback of PENDING transaction should fail")
	}
	if pending.Status() != TxnStatusPending {
		t.Fatalf("rejected rollback changed status: %s", pending.Status())
	}

	failed := NewWithdrawal(a, dec("1000"))
	failed.Execute()
	if failed.Status() != TxnStatusFailed {
		t.Fatalf("setup: expected FAILED, got %s", failed.Status())
	}
	if result := failed.Rollback(); result.Success {
		t.Fatal("rollback of FAILED transaction should fail")
	}

	reversed := NewDeposit(a, dec("10"))
	reversed.Execute()
	reversed.Rollback()
	if reversed.Status() != TxnStatusReversed {
		t.Fatalf("setup: expected REVERSED, got %s", reversed.Status())
	}
	if result := reversed.Rollback(); result.Success {
		t.Fatal("REVERSED is terminal; second rollback should fail")
	}
	if result := reversed.Execute(); result.Success {
		t.Fatal("REVERSED is terminal; re-execute should fail")
	}
}

func TestRollbackFailsWhenCompensationViolatesRule(t *testing.T) {
	a := newSavingsForTest("100", "100", "0.06")

	deposit := NewDeposit(a, dec("50"))
	if result := deposit.Execute(); !result.Success {
		t.Fatalf("execute: %s", result.Message)
	}

	// Intervening withdrawal drops the balance back to the floor, so the
	// compensating withdrawal would breach it.
	if err := a.Withdraw(dec("50")); err != nil {
		t.Fatalf("intervening withdrawal: %v", err)
	}

	result := deposit.Rollback()
	if result.Success {
		t.Fatal("rollback should fail when compensation breaches min balance")
	}
	if deposit.Status() != TxnStatusDone {
		t.Fatalf("failed rollback must leave status DONE, got %s", deposit.Status())
	}
	if !a.Balance().Equal(dec("100")) {
		t.Fatalf("failed rollback mutated balance: %s", a.Balance())
	}
}

func TestTransferExecuteMovesFundsAndRecordsBoth(t *testing.T) {
	b := NewBank("transfer-test")
	cust := NewCustomer("cust-1", "Ada", "ada@example.com", nil)
	if err := b.AddCustomer(cust); err != nil {
		t.Fatal(err)
	}

	from, err := b.OpenAccount("cust-1", AccountKindSavings, dec("6200"), AccountOptions{MinBalance: dec("1000"), InterestRate: dec("0.06")})
	if err != nil {
		t.Fatal(err)
	}
	to, err := b.OpenAccount("cust-1", AccountKindChecking, dec("0"), AccountOptions{OverdraftLimit: dec("500")})
	if err != nil {
		t.Fatal(err)
	}

	txn := NewTransfer(from, to, dec("2000"))
	if result := txn.Execute(); !result.Success {
		t.Fatalf("execute: %s", result.Message)
	}
	if !from.Balance().Equal(dec("4200")) {
		t.Fatalf("expected source balance 4200, got %s", from.Balance())
	}
	if !to.Balance().Equal(dec("2000")) {
		t.Fatalf("expected destination balance 2000, got %s", to.Balance())
	}
	if len(from.History()) != 1 || len(to.History()) != 1 {
		t.Fatal("transfer must be recorded on both accounts")
	}

	if result := txn.Rollback(); !result.Success {
		t.Fatalf("rollback: %s", result.Message)
	}
	if !from.Balance().Equal(dec("6200")) {
		t.Fatalf("rollback did not restore source exactly: %s", from.Balance())
	}
	if !to.Balance().Equal(dec("0")) {
		t.Fatalf("rollback did not restore destination exactly: %s", to.Balance())
	}
	if txn.Status() != TxnStatusReversed {
		t.Fatalf("expected REVERSED, got %s", txn.Status())
	}
}

func TestTransferDebitLegFailureLeavesBothUntouched(t *testing.T) {
	from := newSavingsForTest("1200", "1000", "0.06")
	to := newCheckingForTest("50", "0")

	txn := NewTransfer(from, to, dec("500"))
	result := txn.Execute()
	if result.Success {
		t.Fatal("transfer breaching source min balance should fail")
	}
	if txn.Status() != TxnStatusFailed {
		t.Fatalf("expected FAILED, got %s", txn.Status())
	}
	if !from.Balance().Equal(dec("1200")) || !to.Balance().Equal(dec("50")) {
		t.Fatalf("failed transfer mutated balances: %s / %s", from.Balance(), to.Balance())
	}
	if len(from.History()) != 0 || len(to.History()) != 0 {
		t.Fatal("failed transfer must not be recorded")
	}
}

func TestTransferRollbackDebitLegFailureKeepsStateConsistent(t *testing.T) {
	from := newCheckingForTest("1000", "0")
	to := newSavingsForTest("1000", "1000", "0.06")

	txn := NewTransfer(from, to, dec("300"))
	if result := txn.Execute(); !result.Success {
		t.Fatalf("execute: %s", result.Message)
	}

	// Destination spends the transferred funds, so the rollback's debit leg
	// on the destination would breach its minimum balance.
	if err := to.Withdraw(dec("300")); err != nil {
		t.Fatalf("intervening withdrawal: %v", err)
	}

	result := txn.Rollback()
	if result.Success {
		t.Fatal("rollback should fail when destination cannot cover the debit leg")
	}
	if txn.Status() != TxnStatusDone {
		t.Fatalf("failed rollback must leave status DONE, got %s", txn.Status())
	}
	if !from.Balance().Equal(dec("700")) {
		t.Fatalf("failed rollback mutated source: %s", from.Balance())
	}
	if !to.Balance().Equal(dec("1000")) {
		t.Fatalf("failed rollback mutated destination: %s", to.Balance())
	}
}

func TestTransferCompensationRestoresSource(t *testing.T) {
	from := newCheckingForTest("1000", "0")
	to := newCheckingForTest("0", "0")

	txn := NewTransfer(from, to, dec("400"))

	// Simulate the execute-side partial failure: debit leg done, credit leg
	// about to fail. The compensation must restore the source exactly.
	from.mu.Lock()
	if err := from.debitLocked(txn.amount); err != nil {
		from.mu.Unlock()
		t.Fatalf("debit leg: %v", err)
	}
	txn.debited = true
	if err := from.creditLocked(txn.amount); err != nil {
		from.mu.Unlock()
		t.Fatalf("compensation: %v", err)
	}
	txn.debited = false
	from.mu.Unlock()

	if !from.Balance().Equal(dec("1000")) {
		t.Fatalf("compensation did not restore source: %s", from.Balance())
	}
	if !to.Balance().Equal(dec("0")) {
		t.Fatalf("destination mutated without a credit: %s", to.Balance())
	}
}
