package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
)

type AccountService struct {
	bank      *domain.Bank
	snapshots repo_interfaces.SnapshotRepository
}

func NewAccountService(bank *domain.Bank, snapshots repo_interfaces.SnapshotRepository) *AccountService {
	return &AccountService{bank: bank, snapshots: snapshots}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	kind := domain.AccountKind(strings.ToUpper(strings.TrimSpace(req.AccountType)))
	account, err := s.bank.OpenAccount(strings.TrimSpace(req.CustomerID), kind, req.InitialDeposit, domain.AccountOptions{
		MinBalance:     req.MinBalance,
		InterestRate:   req.InterestRate,
		OverdraftLimit: req.OverdraftLimit,
	})
	if err != nil {
		logger.Error("account service open account failed", err, logger.Fields{
			"customerId":  req.CustomerID,
			"accountType": req.AccountType,
		})
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return commons.ErrorResponse[models.AccountResponse]("Customer not found"), err
		case errors.Is(err, domain.ErrInvalidAccountType):
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		case errors.Is(err, domain.ErrInvalidAmount):
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	if err := s.snapshots.SaveAccount(ctx, account.Snapshot()); err != nil {
		logger.Error("account service snapshot save failed", err, logger.Fields{
			"accountNumber": account.Number(),
		})
	}

	response := mapAccount(account)
	logger.Info("account service open account success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"customerId":    response.CustomerID,
	})

	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.GetAccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if !domain.IsValidAccountNumber(accountNumber) {
		err := errors.New("accountNumber is not a valid account number")
		return commons.ErrorResponse[models.GetAccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.bank.FindAccount(accountNumber)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.GetAccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.GetAccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	history := account.History()
	views := make([]models.TransactionView, 0, len(history))
	for _, txn := range history {
		views = append(views, models.TransactionView{
			TransactionID: txn.ID(),
			Kind:          string(txn.Kind()),
			Status:        string(txn.Status()),
			Amount:        txn.Amount().Round(2),
			Description:   txn.Description(),
			Timestamp:     txn.Timestamp().Format(time.RFC3339),
		})
	}

	response := models.GetAccountResponse{
		AccountResponse: mapAccount(account),
		History:         views,
	}

	return commons.SuccessResponse("account fetched successfully", response), nil
}

func (s *AccountService) CloseAccount(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service close account request", logger.Fields{
		"accountNumber": req.AccountNumber,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	if err := s.bank.CloseAccount(accountNumber); err != nil {
		logger.Error("account service close account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		case errors.Is(err, domain.ErrNonZeroBalance):
			return commons.ErrorResponse[models.AccountResponse]("account not empty", err.Error()), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	if err := s.snapshots.DeleteAccount(ctx, accountNumber); err != nil {
		logger.Error("account service snapshot delete failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
	}

	logger.Info("account service close account success", logger.Fields{
		"accountNumber": accountNumber,
	})

	response := models.AccountResponse{AccountNumber: accountNumber}
	return commons.SuccessResponse("account closed successfully", response), nil
}

// ApplyInterest runs the bank-wide monthly sweep and mirrors the credited
// savings balances afterwards.
func (s *AccountService) ApplyInterest(ctx context.Context) (commons.Response[models.ApplyInterestResponse], error) {
	logger.Info("account service apply interest request", logger.Fields{
		"bank": s.bank.Name(),
	})

	total := s.bank.ApplyInterest()

	for _, account := range s.bank.Accounts() {
		if account.Kind() != domain.AccountKindSavings {
			continue
		}
		if err := s.snapshots.SaveAccount(ctx, account.Snapshot()); err != nil {
			logger.Error("account service snapshot save failed", err, logger.Fields{
				"accountNumber": account.Number(),
			})
		}
	}

	response := models.ApplyInterestResponse{
		TotalInterest: total,
		BankName:      s.bank.Name(),
	}

	logger.Info("account service apply interest success", logger.Fields{
		"totalInterest": total.String(),
	})

	return commons.SuccessResponse("interest applied successfully", response), nil
}

func mapAccount(a *domain.Account) models.AccountResponse {
	response := models.AccountResponse{
		AccountNumber: a.Number(),
		Kind:          string(a.Kind()),
		CustomerID:    a.OwnerID(),
		Balance:       a.Balance(),
		CreatedOn:     a.CreatedOn().Format(time.RFC3339),
	}

	switch a.Kind() {
	case domain.AccountKindSavings:
		minBalance := a.MinBalance()
		interestRate := a.InterestRate()
		response.MinBalance = &minBalance
		response.InterestRate = &interestRate
	case domain.AccountKindChecking:
		overdraftLimit := a.OverdraftLimit()
		response.OverdraftLimit = &overdraftLimit
	}

	return response
}
