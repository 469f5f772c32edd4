package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/usecase/services"
)

func TestCustomerServiceRegisterValidationError(t *testing.T) {
	svc := services.NewCustomerService(nil, nil)

	_, err := svc.RegisterCustomer(context.Background(), models.RegisterCustomerRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty register request")
	}
}

func TestCustomerServiceRegisterAndVerifyPin(t *testing.T) {
	bank := domain.NewBank("cust-svc-test")
	svc := services.NewCustomerService(bank, memory.NewSnapshotRepository())
	ctx := context.Background()

	registered, err := svc.RegisterCustomer(ctx, models.RegisterCustomerRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Pin:   "4321",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	customerID := registered.Data.CustomerID

	verified, err := svc.VerifyPin(ctx, models.VerifyPinRequest{CustomerID: customerID, Pin: "4321"})
	if err != nil {
		t.Fatalf("verify pin: %v", err)
	}
	if !verified.Data.IsValidPin {
		t.Fatal("correct pin rejected")
	}

	if _, err := svc.VerifyPin(ctx, models.VerifyPinRequest{CustomerID: customerID, Pin: "0000"}); err == nil {
		t.Fatal("wrong pin accepted")
	}
}

func TestCustomerServiceGetCustomerNotFound(t *testing.T) {
	bank := domain.NewBank("cust-missing-test")
	svc := services.NewCustomerService(bank, memory.NewSnapshotRepository())

	_, err := svc.GetCustomer(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
