package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/auth"
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
)

type CustomerService struct {
	bank      *domain.Bank
	snapshots repo_interfaces.SnapshotRepository
}

func NewCustomerService(bank *domain.Bank, snapshots repo_interfaces.SnapshotRepository) *CustomerService {
	return &CustomerService{bank: bank, snapshots: snapshots}
}

func (s *CustomerService) RegisterCustomer(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error) {
	logger.Info("customer service register customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service register customer validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("validation failed", err.Error()), err
	}

	credential, err := auth.NewCredential(strings.TrimSpace(req.Pin))
	if err != nil {
		logger.Error("customer service register customer credential failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("failed to register customer", "Unable to register customer right now"), err
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	var customer *domain.Customer
	for attempt := 0; attempt < 5; attempt++ {
		candidate := domain.NewCustomer(generateCustomerID(), name, email, credential)
		err = s.bank.AddCustomer(candidate)
		if err == nil {
			customer = candidate
			break
		}
		if !errors.Is(err, domain.ErrDuplicateCustomer) {
			break
		}
	}
	if customer == nil {
		logger.Error("customer service register customer registry failed", err, nil)
		return commons.ErrorResponse[models.RegisterCustomerResponse]("failed to register customer", "Unable to register customer right now"), err
	}

	if err := s.snapshots.SaveCustomer(ctx, customer.Snapshot()); err != nil {
		logger.Error("customer service snapshot save failed", err, logger.Fields{
			"customerId": customer.ID(),
		})
	}

	response := models.RegisterCustomerResponse{
		CustomerID: customer.ID(),
		Name:       customer.Name(),
		Email:      customer.Email(),
	}

	logger.Info("customer service register customer success", logger.Fields{
		"customerId": response.CustomerID,
	})

	return commons.SuccessResponse("customer registered successfully", response), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (commons.Response[models.GetCustomerResponse], error) {
	logger.Info("customer service get customer request", logger.Fields{
		"customerId": customerID,
	})

	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		err := fmt.Errorf("customerId is required")
		return commons.ErrorResponse[models.GetCustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.bank.GetCustomer(customerID)
	if err != nil {
		logger.Error("customer service get customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return commons.ErrorResponse[models.GetCustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.GetCustomerResponse]("failed to get customer", "Unable to fetch customer right now"), err
	}

	response := models.GetCustomerResponse{
		CustomerID:     customer.ID(),
		Name:           customer.Name(),
		Email:          customer.Email(),
		AccountNumbers: customer.AccountNumbers(),
	}

	return commons.SuccessResponse("customer fetched successfully", response), nil
}

func (s *CustomerService) VerifyPin(ctx context.Context, req models.VerifyPinRequest) (commons.Response[models.VerifyPinResponse], error) {
	logger.Info("customer service verify pin request", logger.Fields{
		"customerId": req.CustomerID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.VerifyPinResponse]("validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	customer, err := s.bank.GetCustomer(customerID)
	if err != nil {
		logger.Error("customer service verify pin lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return commons.ErrorResponse[models.VerifyPinResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.VerifyPinResponse]("failed to verify pin", "Unable to verify pin right now"), err
	}

	if !customer.Verify(strings.TrimSpace(req.Pin)) {
		logger.Info("customer service verify pin mismatch", logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.VerifyPinResponse]("invalid pin", "provided pin does not match"), fmt.Errorf("invalid pin")
	}

	response := models.VerifyPinResponse{
		CustomerID: customerID,
		IsValidPin: true,
	}

	logger.Info("customer service verify pin success", logger.Fields{
		"customerId": customerID,
		"isValidPin": true,
	})

	return commons.SuccessResponse("pin verified successfully", response), nil
}

func generateCustomerID() string {
	return fmt.Sprintf("%010d", time.Now().UnixNano()%10_000_000_000)
}
