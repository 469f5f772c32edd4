package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/commons"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
	Rollback(ctx context.Context, req models.RollbackRequest) (commons.Response[models.TransactionResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/transactions/deposit", wrap(http.HandlerFunc(c.deposit), authMiddleware))
	mux.Handle("/transactions/withdraw", wrap(http.HandlerFunc(c.withdraw), authMiddleware))
	mux.Handle("/transactions/transfer", wrap(http.HandlerFunc(c.transfer), authMiddleware))
	mux.Handle("/transactions/rollback", wrap(http.HandlerFunc(c.rollback), authMiddleware))
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Deposit(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Withdraw(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Transfer(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) rollback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	var req models.RollbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Rollback(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
