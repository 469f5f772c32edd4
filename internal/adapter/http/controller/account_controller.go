package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.GetAccountResponse], error)
	CloseAccount(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.AccountResponse], error)
	ApplyInterest(ctx context.Context) (commons.Response[models.ApplyInterestResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/accounts", wrap(http.HandlerFunc(c.openAccount), authMiddleware))
	mux.Handle("/accounts/get", wrap(http.HandlerFunc(c.getAccount), authMiddleware))
	mux.Handle("/accounts/close", wrap(http.HandlerFunc(c.closeAccount), authMiddleware))
	mux.Handle("/accounts/apply-interest", wrap(http.HandlerFunc(c.applyInterest), authMiddleware))
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.GetAccountResponse]("method not allowed"))
		return
	}

	response, err := c.service.GetAccount(r.Context(), r.URL.Query().Get("accountNumber"))
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CloseAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) applyInterest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ApplyInterestResponse]("method not allowed"))
		return
	}

	response, err := c.service.ApplyInterest(r.Context())
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
