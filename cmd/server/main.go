package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodmarket-be/internal/auth"
	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/catalog"
	"foodmarket-be/internal/config"
	"foodmarket-be/internal/customer"
	"foodmarket-be/internal/db"
	"foodmarket-be/internal/events"
	"foodmarket-be/internal/food"
	"foodmarket-be/internal/httpapi"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/middleware"
	"foodmarket-be/internal/notification"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/telemetry"
	"foodmarket-be/internal/upload"
	"foodmarket-be/internal/vendor"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.L().Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var cache *catalog.Cache
	if cfg.RedisAddr != "" {
		client := catalog.NewRedisClient(cfg.RedisAddr)
		defer client.Close()
		cache = catalog.NewCache(client, cfg.CatalogCacheTTL)
	}

	limiter := middleware.NewRateLimiter()
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, cache, publisher, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("HTTP server running", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires repositories and services onto the router. cache may be nil.
func newServer(
	cfg *config.Config,
	database *sql.DB,
	cache *catalog.Cache,
	publisher events.Publisher,
	limiter *middleware.RateLimiter,
) http.Handler {
	signer := auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL)

	foodRepo := food.NewRepository(database)
	vendorRepo := vendor.NewRepository(database)
	vendorSvc := vendor.NewService(vendorRepo, foodRepo, signer, cache)

	catalogSvc := catalog.NewService(vendorRepo, cache)

	cartSvc := cart.NewService(cart.NewRepository(database), foodRepo)
	orderSvc := order.NewService(order.NewRepository(database), vendorRepo, foodRepo, publisher, cfg.ServiceName)

	customerSvc := customer.NewService(
		customer.NewRepository(database),
		signer,
		notification.NewSender(cfg),
		cartSvc,
		orderSvc,
	)

	h := httpapi.NewHandler(vendorSvc, catalogSvc, customerSvc, cartSvc, orderSvc, upload.NewStore(cfg.ImageDir))
	return httpapi.NewRouter(httpapi.RouterConfig{
		ServiceName: cfg.ServiceName,
		CORSOrigin:  cfg.CORSOrigin,
		AdminKey:    cfg.AdminAPIKey,
		ImageDir:    cfg.ImageDir,
		Tokens:      signer,
		Limiter:     limiter,
	}, h)
}
