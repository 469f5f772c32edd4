package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// TransactionService executes deposits, withdrawals and transfers against
// the registry and keeps every transaction it created, so a DONE
// transaction can be rolled back later by id.
type TransactionService struct {
	bank      *domain.Bank
	snapshots repo_interfaces.SnapshotRepository

	mu   sync.RWMutex
	txns map[string]*domain.Transaction
}

func NewTransactionService(bank *domain.Bank, snapshots repo_interfaces.SnapshotRepository) *TransactionService {
	return &TransactionService{
		bank:      bank,
		snapshots: snapshots,
		txns:      make(map[string]*domain.Transaction),
	}
}

func (s *TransactionService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service deposit validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.bank.FindAccount(strings.TrimSpace(req.AccountNumber))
	if err != nil {
		logger.Error("transaction service deposit account lookup failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to deposit", "Unable to deposit right now"), err
	}

	txn := domain.NewDeposit(account, req.Amount)
	return s.execute(ctx, txn, "deposit")
}

func (s *TransactionService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service withdraw validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.bank.FindAccount(strings.TrimSpace(req.AccountNumber))
	if err != nil {
		logger.Error("transaction service withdraw account lookup failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to withdraw", "Unable to withdraw right now"), err
	}

	txn := domain.NewWithdrawal(account, req.Amount)
	return s.execute(ctx, txn, "withdrawal")
}

func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	from, err := s.bank.FindAccount(strings.TrimSpace(req.FromAccountNumber))
	if err != nil {
		logger.Error("transaction service transfer source lookup failed", err, logger.Fields{
			"accountNumber": req.FromAccountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Source account not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to transfer", "Unable to transfer right now"), err
	}

	to, err := s.bank.FindAccount(strings.TrimSpace(req.ToAccountNumber))
	if err != nil {
		logger.Error("transaction service transfer destination lookup failed", err, logger.Fields{
			"accountNumber": req.ToAccountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Destination account not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to transfer", "Unable to transfer right now"), err
	}

	txn := domain.NewTransfer(from, to, req.Amount)
	return s.execute(ctx, txn, "transfer")
}

func (s *TransactionService) Rollback(ctx context.Context, req models.RollbackRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service rollback request", logger.Fields{
		"transactionId": req.TransactionID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	transactionID := strings.TrimSpace(req.TransactionID)
	s.mu.RLock()
	txn, ok := s.txns[transactionID]
	s.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("transaction %s not found", transactionID)
		logger.Error("transaction service rollback lookup failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("Transaction not found"), err
	}

	result := txn.Rollback()
	if !result.Success {
		logger.Info("transaction service rollback rejected", logger.Fields{
			"transactionId": transactionID,
			"reason":        result.Message,
		})
		return commons.ErrorResponse[models.TransactionResponse]("rollback failed", result.Message), errors.New(result.Message)
	}

	s.mirrorAccounts(ctx, txn)

	response := mapTransaction(txn, result)
	logger.Info("transaction service rollback success", logger.Fields{
		"transactionId": transactionID,
	})

	return commons.SuccessResponse("transaction rolled back successfully", response), nil
}

// execute runs the transaction, registers it for later rollback whatever
// the outcome, and mirrors the touched balances on success.
func (s *TransactionService) execute(ctx context.Context, txn *domain.Transaction, op string) (commons.Response[models.TransactionResponse], error) {
	s.mu.Lock()
	s.txns[txn.ID()] = txn
	s.mu.Unlock()

	result := txn.Execute()
	if !result.Success {
		logger.Info("transaction service "+op+" rejected", logger.Fields{
			"transactionId": txn.ID(),
			"reason":        result.Message,
		})
		return commons.ErrorResponse[models.TransactionResponse](op+" failed", result.Message), errors.New(result.Message)
	}

	s.mirrorAccounts(ctx, txn)

	response := mapTransaction(txn, result)
	logger.Info("transaction service "+op+" success", logger.Fields{
		"transactionId": txn.ID(),
	})

	return commons.SuccessResponse(op+" completed successfully", response), nil
}

func (s *TransactionService) mirrorAccounts(ctx context.Context, txn *domain.Transaction) {
	for _, account := range txn.Accounts() {
		if err := s.snapshots.SaveAccount(ctx, account.Snapshot()); err != nil {
			logger.Error("transaction service snapshot save failed", err, logger.Fields{
				"accountNumber": account.Number(),
			})
		}
	}
}

func mapTransaction(txn *domain.Transaction, result domain.TxnResult) models.TransactionResponse {
	response := models.TransactionResponse{
		TransactionID: txn.ID(),
		Kind:          string(txn.Kind()),
		Status:        string(txn.Status()),
		Amount:        txn.Amount().Round(2),
		Description:   txn.Description(),
		Message:       result.Message,
		Balances:      make(map[string]decimal.Decimal),
	}
	for _, account := range txn.Accounts() {
		response.Balances[account.Number()] = account.Balance()
	}
	return response
}
