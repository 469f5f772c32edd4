package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/commons"
)

type CustomerService interface {
	RegisterCustomer(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error)
	GetCustomer(ctx context.Context, customerID string) (commons.Response[models.GetCustomerResponse], error)
	VerifyPin(ctx context.Context, req models.VerifyPinRequest) (commons.Response[models.VerifyPinResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/customers", wrap(http.HandlerFunc(c.registerCustomer), authMiddleware))
	mux.Handle("/customers/get", wrap(http.HandlerFunc(c.getCustomer), authMiddleware))
	mux.Handle("/customers/verify-pin", wrap(http.HandlerFunc(c.verifyPin), authMiddleware))
}

func (c *CustomerController) registerCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.RegisterCustomerResponse]("method not allowed"))
		return
	}

	var req models.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.RegisterCustomer(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *CustomerController) getCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.GetCustomerResponse]("method not allowed"))
		return
	}

	response, err := c.service.GetCustomer(r.Context(), r.URL.Query().Get("customerId"))
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) verifyPin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.VerifyPinResponse]("method not allowed"))
		return
	}

	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.VerifyPin(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
