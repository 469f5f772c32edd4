package domain

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrMinBalanceViolation = errors.New("withdrawal would breach minimum balance")
	ErrOverdraftExceeded   = errors.New("withdrawal would exceed overdraft limit")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrDuplicateCustomer   = errors.New("customer already registered")
	ErrInvalidAccountType  = errors.New("unknown account type")
	ErrNonZeroBalance      = errors.New("account balance must be zero to close")
	ErrRollbackIneligible  = errors.New("transaction is not eligible for rollback")
)
