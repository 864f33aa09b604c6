package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpatwa/nivesh/internal/clients/quotes"
	"github.com/rpatwa/nivesh/internal/config"
	"github.com/rpatwa/nivesh/internal/database"
	"github.com/rpatwa/nivesh/internal/modules/assets"
	"github.com/rpatwa/nivesh/internal/modules/cashflow"
	"github.com/rpatwa/nivesh/internal/modules/health"
	"github.com/rpatwa/nivesh/internal/modules/mutualfunds"
	"github.com/rpatwa/nivesh/internal/modules/networth"
	"github.com/rpatwa/nivesh/internal/modules/portfolio"
	"github.com/rpatwa/nivesh/internal/modules/rebalancing"
	"github.com/rpatwa/nivesh/internal/modules/universe"
	"github.com/rpatwa/nivesh/internal/scheduler"
	"github.com/rpatwa/nivesh/internal/server"
	"github.com/rpatwa/nivesh/pkg/logger"
)

func main() {
	// Load configuration first so the log level is configurable
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Nivesh")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repositories
	stockRepo := universe.NewStockRepository(db.Conn(), log)
	txnRepo := portfolio.NewTransactionRepository(db.Conn(), log)
	mfRepo := mutualfunds.NewRepository(db.Conn(), log)
	assetRepo := assets.NewRepository(db.Conn(), log)
	cashflowRepo := cashflow.NewRepository(db.Conn(), log)

	// Services
	portfolioSvc := portfolio.NewService(txnRepo, stockRepo, log)
	mfSvc := mutualfunds.NewService(mfRepo, log)
	networthSvc := networth.NewService(cfg, portfolioSvc, mfSvc, assetRepo, txnRepo, mfRepo, log)
	healthSvc := health.NewService(portfolioSvc, stockRepo, log)
	rebalancingSvc := rebalancing.NewService(healthSvc, stockRepo, log)
	cashflowSvc := cashflow.NewService(cashflowRepo, log)

	// Background jobs
	quoteClient := quotes.NewClient(cfg.QuoteServiceURL, log)
	sched := scheduler.New(log)
	refreshJob := scheduler.NewPriceRefreshJob(stockRepo, quoteClient, log)
	if err := sched.AddJob(cfg.PriceRefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		Config:  cfg,
		DevMode: cfg.DevMode,
		Modules: []server.Module{
			universe.NewHandler(stockRepo, log),
			portfolio.NewHandler(portfolioSvc, txnRepo, log),
			mutualfunds.NewHandler(mfSvc, mfRepo, log),
			assets.NewHandler(assetRepo, log),
			networth.NewHandler(networthSvc, log),
			health.NewHandler(healthSvc, log),
			rebalancing.NewHandler(rebalancingSvc, log),
			cashflow.NewHandler(cashflowSvc, cashflowRepo, log),
		},
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
