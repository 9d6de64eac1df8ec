package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/controller"
	"github.com/api-sage/retail-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger/internal/adapter/http/router"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/sqlite"
	"github.com/api-sage/retail-ledger/internal/config"
	"github.com/api-sage/retail-ledger/internal/numgen"
	"github.com/api-sage/retail-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var (
		clientRepo      repo_interfaces.ClientRepository
		accountRepo     repo_interfaces.AccountRepository
		transactionRepo repo_interfaces.TransactionRepository
	)
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		clientRepo = sqlite.NewClientRepository(db)
		accountRepo = sqlite.NewAccountRepository(db)
		transactionRepo = sqlite.NewTransactionRepository(db)
	default:
		clientRepo = postgres.NewClientRepository(db)
		accountRepo = postgres.NewAccountRepository(db)
		transactionRepo = postgres.NewTransactionRepository(db)
	}

	clientService := services.NewClientService(clientRepo, accountRepo)
	accountService := services.NewAccountService(accountRepo, clientRepo, numgen.New())
	transactionService := services.NewTransactionService(transactionRepo, accountRepo)

	mux := router.New(
		controller.NewClientController(clientService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           middleware.CorrelationID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		return sqlite.Open(ctx, cfg.DatabaseDSN)
	}

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		return nil, err
	}
	return postgres.Open(ctx, cfg.DatabaseDSN)
}
