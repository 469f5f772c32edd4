package router

import "net/http"

type CustomerRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type TransactionRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	customerController CustomerRouteRegistrar,
	accountController AccountRouteRegistrar,
	transactionController TransactionRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	if customerController != nil {
		customerController.RegisterRoutes(mux, authMiddleware)
	}
	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if transactionController != nil {
		transactionController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
