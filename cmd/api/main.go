package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	categorySvc "github.com/andredacosta/walletwise/internal/category"
	categoryStore "github.com/andredacosta/walletwise/internal/category/store"
	"github.com/andredacosta/walletwise/internal/config"
	"github.com/andredacosta/walletwise/internal/database"
	wwHttp "github.com/andredacosta/walletwise/internal/http"
	categoryHandler "github.com/andredacosta/walletwise/internal/http/category"
	importHandler "github.com/andredacosta/walletwise/internal/http/importcsv"
	statsHandler "github.com/andredacosta/walletwise/internal/http/stats"
	txHandler "github.com/andredacosta/walletwise/internal/http/transaction"
	walletHandler "github.com/andredacosta/walletwise/internal/http/wallet"
	"github.com/andredacosta/walletwise/internal/importer"
	"github.com/andredacosta/walletwise/internal/ledger"
	ledgerStore "github.com/andredacosta/walletwise/internal/ledger/store"
	"github.com/andredacosta/walletwise/internal/stats"
	statsStore "github.com/andredacosta/walletwise/internal/stats/store"
	"github.com/andredacosta/walletwise/internal/transaction"
	txStore "github.com/andredacosta/walletwise/internal/transaction/store"
	"github.com/andredacosta/walletwise/internal/upload"
	"github.com/andredacosta/walletwise/internal/wallet"
	walletStore "github.com/andredacosta/walletwise/internal/wallet/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolLimits{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		uploadService      = upload.NewService(cfg.Upload.URL, cfg.Upload.Preset)
		ledgerService      = ledger.NewService(ledgerStore.New(db), uploadService)
		walletService      = wallet.NewService(walletStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		statsService       = stats.NewService(statsStore.New(db))
		categoryService    = categorySvc.NewService(categoryStore.New(db))
		importService      = importer.NewService()
	)

	var (
		walletH   = walletHandler.NewHandler(walletService, ledgerService)
		txH       = txHandler.NewHandler(ledgerService, transactionService)
		statsH    = statsHandler.NewHandler(statsService)
		importH   = importHandler.NewHandler(importService, ledgerService, categoryService)
		categoryH = categoryHandler.NewHandler(categoryService)
	)

	router := wwHttp.New(cfg.Auth.JWTSecret, walletH, txH, statsH, importH, categoryH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
