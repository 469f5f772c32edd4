package domain

import (
	"errors"
	"testing"
)

func newBankWithCustomer(t *testing.T, name string) (*Bank, *Customer) {
	t.Helper()
	b := NewBank(name)
	c := NewCustomer("cust-1", "Ada", "ada@example.com", nil)
	if err := b.AddCustomer(c); err != nil {
		t.Fatal(err)
	}
	return b, c
}

func TestAddCustomerRejectsDuplicateID(t *testing.T) {
	b, _ := newBankWithCustomer(t, "dup-test")

	err := b.AddCustomer(NewCustomer("cust-1", "Imposter", "other@example.com", nil))
	if !errors.Is(err, ErrDuplicateCustomer) {
		t.Fatalf("expected ErrDuplicateCustomer, got %v", err)
	}
}

func TestOpenAccountUnknownCustomer(t *testing.T) {
	b := NewBank("lookup-test")

	_, err := b.OpenAccount("nobody", AccountKindSavings, dec("0"), AccountOptions{})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestOpenAccountUnknownTypeDoesNotConsumeNumber(t *testing.T) {
	b, _ := newBankWithCustomer(t, "type-test")

	_, err := b.OpenAccount("cust-1", AccountKind("MONEY_MARKET"), dec("0"), AccountOptions{})
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}

	a, err := b.OpenAccount("cust-1", AccountKindSavings, dec("0"), AccountOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Number() != "S0000001" {
		t.Fatalf("rejected open consumed a number: next was %s", a.Number())
	}
}

func TestOpenAccountRejectsNegativeInitialDeposit(t *testing.T) {
	b, _ := newBankWithCustomer(t, "neg-test")

	_, err := b.OpenAccount("cust-1", AccountKindChecking, dec("-1"), AccountOptions{})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccountNumbersDistinctAndWellFormed(t *testing.T) {
	b, _ := newBankWithCustomer(t, "numbers-test")
	other := NewCustomer("cust-2", "Grace", "grace@example.com", nil)
	if err := b.AddCustomer(other); err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		customerID := "cust-1"
		kind := AccountKindSavings
		if i%2 == 1 {
			customerID = "cust-2"
			kind = AccountKindChecking
		}

		a, err := b.OpenAccount(customerID, kind, dec("0"), AccountOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if !IsValidAccountNumber(a.Number()) {
			t.Fatalf("allocated malformed number %q", a.Number())
		}
		if seen[a.Number()] {
			t.Fatalf("duplicate account number %q", a.Number())
		}
		seen[a.Number()] = true
	}
}

func TestCloseAccountRequiresExactZeroBalance(t *testing.T) {
	b, _ := newBankWithCustomer(t, "close-test")

	a, err := b.OpenAccount("cust-1", AccountKindChecking, dec("0.001"), AccountOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// The displayed balance rounds to 0.00 but the account is not empty.
	if !a.Balance().Equal(dec("0")) {
		t.Fatalf("expected displayed balance 0.00, got %s", a.Balance())
	}
	if err := b.CloseAccount(a.Number()); !errors.Is(err, ErrNonZeroBalance) {
		t.Fatalf("expected ErrNonZeroBalance for sub-cent residue, got %v", err)
	}
}

func TestCloseAccountUnlinksAndRemoves(t *testing.T) {
	b, c := newBankWithCustomer(t, "unlink-test")

	a, err := b.OpenAccount("cust-1", AccountKindSavings, dec("0"), AccountOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if err := b.CloseAccount(a.Number()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := b.FindAccount(a.Number()); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("closed account still findable: %v", err)
	}
	for _, n := range c.AccountNumbers() {
		if n == a.Number() {
			t.Fatal("closed account still linked to owner")
		}
	}

	if err := b.CloseAccount(a.Number()); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on double close, got %v", err)
	}
}

func TestAccountNumbersSafeDuringConcurrentOpens(t *testing.T) {
	b, c := newBankWithCustomer(t, "concurrent-link-test")

	const opens = 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < opens; i++ {
			if _, err := b.OpenAccount("cust-1", AccountKindSavings, dec("0"), AccountOptions{}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	for alive := true; alive; {
		select {
		case <-done:
			alive = false
		default:
			_ = c.AccountNumbers()
			_ = c.Snapshot()
		}
	}

	if got := len(c.AccountNumbers()); got != opens {
		t.Fatalf("expected %d linked accounts, got %d", opens, got)
	}
}

func TestApplyInterestSweepsSavingsOnly(t *testing.T) {
	b, _ := newBankWithCustomer(t, "interest-test")

	savings, err := b.OpenAccount("cust-1", AccountKindSavings, dec("5000"), AccountOptions{
		MinBalance:   dec("1000"),
		InterestRate: dec("0.06"),
	})
	if err != nil {
		t.Fatal(err)
	}
	checking, err := b.OpenAccount("cust-1", AccountKindChecking, dec("2000"), AccountOptions{
		OverdraftLimit: dec("3000"),
	})
	if err != nil {
		t.Fatal(err)
	}

	total := b.ApplyInterest()
	if !total.Equal(dec("25")) {
		t.Fatalf("expected total interest 25.00, got %s", total)
	}
	if !savings.Balance().Equal(dec("5025")) {
		t.Fatalf("expected savings balance 5025.00, got %s", savings.Balance())
	}
	if !checking.Balance().Equal(dec("2000")) {
		t.Fatalf("checking balance touched by interest sweep: %s", checking.Balance())
	}
	if len(checking.History()) != 0 {
		t.Fatal("checking account must not receive interest transactions")
	}
}

func TestAccountsOfPreservesInsertionOrder(t *testing.T) {
	b, _ := newBankWithCustomer(t, "order-test")

	first, _ := b.OpenAccount("cust-1", AccountKindChecking, dec("0"), AccountOptions{})
	second, _ := b.OpenAccount("cust-1", AccountKindSavings, dec("0"), AccountOptions{})
	third, _ := b.OpenAccount("cust-1", AccountKindChecking, dec("0"), AccountOptions{})

	accounts, err := b.AccountsOf("cust-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{first.Number(), second.Number(), third.Number()}
	if len(accounts) != len(want) {
		t.Fatalf("expected %d accounts, got %d", len(want), len(accounts))
	}
	for i, a := range accounts {
		if a.Number() != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], a.Number())
		}
	}
}

func TestAllBanksListsCreatedBanks(t *testing.T) {
	b := NewBank("registry-test")

	found := false
	for _, bank := range AllBanks() {
		if bank == b {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("new bank missing from AllBanks")
	}
}

func TestRestoreAdvancesSequencePastRestoredNumbers(t *testing.T) {
	b := NewBank("restore-test")

	if err := b.RestoreCustomer(CustomerSnapshot{ID: "cust-1", Name: "Ada", Email: "ada@example.com"}, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.RestoreAccount(AccountSnapshot{
		Number:  "S0000005",
		Kind:    AccountKindSavings,
		OwnerID: "cust-1",
		Balance: dec("100"),
	}); err != nil {
		t.Fatal(err)
	}

	a, err := b.OpenAccount("cust-1", AccountKindChecking, dec("0"), AccountOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Number() != "C0000006" {
		t.Fatalf("expected C0000006 after restoring seq 5, got %s", a.Number())
	}
}

func TestRestoreAccountRequiresOwner(t *testing.T) {
	b := NewBank("restore-owner-test")

	err := b.RestoreAccount(AccountSnapshot{
		Number:  "C0000001",
		Kind:    AccountKindChecking,
		OwnerID: "ghost",
		Balance: dec("0"),
	})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
