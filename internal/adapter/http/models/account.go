package models

import (
	"errors"
	"strings"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	CustomerID     string          `json:"customerId"`
	AccountType    string          `json:"accountType"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	MinBalance     decimal.Decimal `json:"minBalance"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
}

// Validate checks shape only; whether the account type is one the ledger
// knows is the registry's call, so an unknown type still reaches the domain
// and fails there.
func (r OpenAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		errs = append(errs, "accountType is required")
	}
	if r.InitialDeposit.Sign() < 0 {
		errs = append(errs, "initialDeposit cannot be negative")
	}
	if r.MinBalance.Sign() < 0 {
		errs = append(errs, "minBalance cannot be negative")
	}
	if r.InterestRate.Sign() < 0 {
		errs = append(errs, "interestRate cannot be negative")
	}
	if r.OverdraftLimit.Sign() < 0 {
		errs = append(errs, "overdraftLimit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	AccountNumber  string           `json:"accountNumber"`
	Kind           string           `json:"kind"`
	CustomerID     string           `json:"customerId"`
	Balance        decimal.Decimal  `json:"balance"`
	MinBalance     *decimal.Decimal `json:"minBalance,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty"`
	CreatedOn      string           `json:"createdOn"`
}

type TransactionView struct {
	TransactionID string          `json:"transactionId"`
	Kind          string          `json:"kind"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Timestamp     string          `json:"timestamp"`
}

type GetAccountResponse struct {
	AccountResponse
	History []TransactionView `json:"history"`
}

type CloseAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
}

func (r CloseAccountRequest) Validate() error {
	if !domain.IsValidAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		return errors.New("accountNumber is not a valid account number")
	}
	return nil
}

type ApplyInterestResponse struct {
	TotalInterest decimal.Decimal `json:"totalInterest"`
	BankName      string          `json:"bankName"`
}
