package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/controller"
	"github.com/stonebridge-bank/ledger/internal/adapter/http/middleware"
	"github.com/stonebridge-bank/ledger/internal/adapter/http/router"
	"github.com/stonebridge-bank/ledger/internal/adapter/repository/memory"
	"github.com/stonebridge-bank/ledger/internal/adapter/repository/postgres"
	"github.com/stonebridge-bank/ledger/internal/config"
	"github.com/stonebridge-bank/ledger/internal/ledger"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store           ledger.Store
		recoveryRepo    ledger.RecoveryRepository
		auditRepo       ledger.AuditRepository
		accountRepo     ledger.AccountRepository
		transactionRepo ledger.TransactionRepository
		reportRepo      ledger.ReportRepository
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()

		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		store = postgres.NewLedgerStore(db)
		recoveryRepo = postgres.NewRecoveryRepository(db)
		auditRepo = postgres.NewAuditRepository(db)
		accountRepo = postgres.NewAccountRepository(db)
		transactionRepo = postgres.NewTransactionRepository(db)
		reportRepo = postgres.NewReportRepository(db)

	case config.StorageDriverMemory:
		memStore := memory.NewStore()
		store = memStore
		recoveryRepo = memory.NewRecoveryRepository()
		auditRepo = memory.NewAuditRepository(memStore)
		accountRepo = memory.NewAccountRepository(memStore)
		transactionRepo = memory.NewTransactionRepository(memStore)
		reportRepo = memory.NewReportRepository(memStore)
	}

	transferService := services.NewTransferService(store, recoveryRepo)
	accountService := services.NewAccountService(accountRepo, transactionRepo)
	auditService := services.NewAuditService(auditRepo)
	recoveryService := services.NewRecoveryService(recoveryRepo)
	reportService := services.NewReportService(reportRepo, accountRepo, transactionRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		authMiddleware,
		controller.NewTransferController(transferService, accountService),
		controller.NewAccountController(accountService),
		controller.NewLogsController(auditService, recoveryService),
		controller.NewReportController(reportService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("ledger server listening on %s (storage=%s)", cfg.HTTPAddr, cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
