package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/controller"
	"github.com/api-sage/retail-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger/internal/adapter/http/router"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/auth"
	"github.com/api-sage/retail-ledger/internal/config"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/usecase/services"
)

func main() {
	cfg := config.Load()

	bank := domain.NewBank(cfg.BankName)

	var snapshots repo_interfaces.SnapshotRepository = memory.NewSnapshotRepository()
	if cfg.DatabaseDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}

		repo := postgres.NewSnapshotRepository(db)
		if err := restore(ctx, bank, repo); err != nil {
			log.Fatalf("restore ledger: %v", err)
		}
		snapshots = repo
	}

	customerService := services.NewCustomerService(bank, snapshots)
	accountService := services.NewAccountService(bank, snapshots)
	transactionService := services.NewTransactionService(bank, snapshots)

	mux := router.New(
		controller.NewCustomerController(customerService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		middleware.BasicAuth(cfg.ClientID, cfg.ClientKey),
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("ledger %q listening on %s", cfg.BankName, cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func restore(ctx context.Context, bank *domain.Bank, repo *postgres.SnapshotRepository) error {
	customers, err := repo.LoadCustomers(ctx)
	if err != nil {
		return err
	}
	for _, snap := range customers {
		if err := bank.RestoreCustomer(snap, auth.FromHash(snap.CredentialHash)); err != nil {
			return err
		}
	}

	accounts, err := repo.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	for _, snap := range accounts {
		if err := bank.RestoreAccount(snap); err != nil {
			return err
		}
	}

	log.Printf("restored %d customers and %d accounts", len(customers), len(accounts))
	return nil
}
