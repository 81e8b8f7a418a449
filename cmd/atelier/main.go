package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/atelier-erp/atelier-erp/internal/analytics"
	"github.com/atelier-erp/atelier-erp/internal/app"
	"github.com/atelier-erp/atelier-erp/internal/audit"
	audithttp "github.com/atelier-erp/atelier-erp/internal/audit/http"
	"github.com/atelier-erp/atelier-erp/internal/auth"
	"github.com/atelier-erp/atelier-erp/internal/catalog"
	"github.com/atelier-erp/atelier-erp/internal/inventory"
	"github.com/atelier-erp/atelier-erp/internal/procurement"
	"github.com/atelier-erp/atelier-erp/internal/routines"
	"github.com/atelier-erp/atelier-erp/internal/sales"
	"github.com/atelier-erp/atelier-erp/internal/shared"
	"github.com/atelier-erp/atelier-erp/internal/supply"
)

const dashboardCacheTTL = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	auditWarn := app.NewAuditWarnLogger(logger)

	dbpool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "atelier_session", cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(dbpool)
	recorder := audit.NewRecorder(dbpool)
	if err := authRepo.EnsureSchema(ctx); err != nil {
		logger.Error("ensure app_users schema", slog.Any("error", err))
		os.Exit(1)
	}
	if err := recorder.EnsureSchema(ctx); err != nil {
		logger.Error("ensure audit_log schema", slog.Any("error", err))
		os.Exit(1)
	}
	if err := procurement.EnsureSchema(ctx, dbpool); err != nil {
		logger.Error("ensure purchase_orders schema", slog.Any("error", err))
		os.Exit(1)
	}

	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, auditWarn, authService, sessionManager, recorder)

	auditService := audit.NewService(audit.NewRepository(dbpool))
	auditHandler := audithttp.NewHandler(logger, auditService)

	routineClient := routines.NewClient(dbpool)
	routinesHandler := routines.NewHandler(logger, routineClient)

	catalogService := catalog.NewService(catalog.NewRepository(dbpool), recorder, auditWarn)
	catalogHandler := catalog.NewHandler(logger, catalogService, routineClient)

	supplyService := supply.NewService(supply.NewRepository(dbpool), recorder, auditWarn)
	supplyHandler := supply.NewHandler(logger, supplyService)

	inventoryService := inventory.NewService(inventory.NewRepository(dbpool), recorder, auditWarn)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	procurementService := procurement.NewService(procurement.NewRepository(dbpool), recorder, auditWarn)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	salesService := sales.NewService(sales.NewRepository(dbpool), routineClient, recorder, auditWarn)
	salesHandler := sales.NewHandler(logger, salesService)

	analyticsCache := analytics.NewCache(redisClient, dashboardCacheTTL)
	analyticsService := analytics.NewService(analytics.NewRepository(dbpool), analyticsCache)
	analyticsHandler := analytics.NewHandler(logger, analyticsService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		AuthHandler:        authHandler,
		AuditHandler:       auditHandler,
		RoutinesHandler:    routinesHandler,
		CatalogHandler:     catalogHandler,
		SupplyHandler:      supplyHandler,
		InventoryHandler:   inventoryHandler,
		ProcurementHandler: procurementHandler,
		SalesHandler:       salesHandler,
		AnalyticsHandler:   analyticsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
