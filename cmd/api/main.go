package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/twalumbu/martpos/internal/config"
	"github.com/twalumbu/martpos/internal/i18n"
	"github.com/twalumbu/martpos/internal/modules/auth"
	"github.com/twalumbu/martpos/internal/modules/catalog"
	"github.com/twalumbu/martpos/internal/modules/customer"
	"github.com/twalumbu/martpos/internal/modules/order"
	"github.com/twalumbu/martpos/internal/modules/receipt"
	"github.com/twalumbu/martpos/internal/modules/settings"
	"github.com/twalumbu/martpos/internal/modules/user"
	"github.com/twalumbu/martpos/internal/printing"
	"github.com/twalumbu/martpos/internal/sqlite"
	"github.com/twalumbu/martpos/internal/state"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		zap.S().Fatalw("failed to open database", "path", cfg.DBPath, "err", err)
	}
	defer db.Close()
	zap.S().Infow("database ready", "path", cfg.DBPath)

	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		zap.S().Fatalw("failed to load locales", "err", err)
	}
	appState := state.New(cfg.DefaultLocale)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewSQLiteRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, appState, cfg.JWTSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Settings & Catalog ──────────────────────────────────
	settingsRepo := settings.NewSQLiteRepository(db)
	settingsService := settings.NewService(settingsRepo)
	settings.NewHandler(settingsService).RegisterRoutes(router)

	catalogRepo := catalog.NewSQLiteRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewSQLiteRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewSQLiteRepository(db)
	orderService := order.NewService(orderRepo, catalogService, settingsService)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Receipts & localization ─────────────────────────────
	printer := printing.NewPrinter(cfg.PrintCommand)
	receiptService := receipt.NewService(orderService, settingsService, translator, appState, printer)
	receipt.NewHandler(receiptService).RegisterRoutes(router)

	i18n.NewHandler(translator, appState).RegisterRoutes(router)

	// ── Start server ────────────────────────────────────────
	zap.S().Infow("martpos api listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		zap.S().Fatalw("server stopped", "err", err)
	}
}
