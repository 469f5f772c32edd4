package models

import (
	"errors"
	"strings"

	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if !domain.IsValidAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber is not a valid account number")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if !domain.IsValidAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber is not a valid account number")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	from := strings.TrimSpace(r.FromAccountNumber)
	to := strings.TrimSpace(r.ToAccountNumber)

	if !domain.IsValidAccountNumber(from) {
		errs = append(errs, "fromAccountNumber is not a valid account number")
	}
	if !domain.IsValidAccountNumber(to) {
		errs = append(errs, "toAccountNumber is not a valid account number")
	}
	if from != "" && from == to {
		errs = append(errs, "fromAccountNumber and toAccountNumber cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RollbackRequest struct {
	TransactionID string `json:"transactionId"`
}

func (r RollbackRequest) Validate() error {
	if strings.TrimSpace(r.TransactionID) == "" {
		return errors.New("transactionId is required")
	}
	return nil
}

type TransactionResponse struct {
	TransactionID string                     `json:"transactionId"`
	Kind          string                     `json:"kind"`
	Status        string                     `json:"status"`
	Amount        decimal.Decimal            `json:"amount"`
	Description   string                     `json:"description"`
	Message       string                     `json:"message"`
	Balances      map[string]decimal.Decimal `json:"balances"`
}
