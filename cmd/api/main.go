package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/veermani/kitchen-backend/api/routes"
	"github.com/veermani/kitchen-backend/internal/auth"
	"github.com/veermani/kitchen-backend/internal/bulkorders"
	"github.com/veermani/kitchen-backend/internal/cart"
	"github.com/veermani/kitchen-backend/internal/catalog"
	"github.com/veermani/kitchen-backend/internal/checkout"
	"github.com/veermani/kitchen-backend/internal/invoice"
	"github.com/veermani/kitchen-backend/internal/orders"
	"github.com/veermani/kitchen-backend/internal/payments"
	"github.com/veermani/kitchen-backend/internal/pos"
	"github.com/veermani/kitchen-backend/internal/users"
	"github.com/veermani/kitchen-backend/pkg/auth/session"
	"github.com/veermani/kitchen-backend/pkg/config"
	"github.com/veermani/kitchen-backend/pkg/db"
	"github.com/veermani/kitchen-backend/pkg/logger"
	"github.com/veermani/kitchen-backend/pkg/metrics"
	"github.com/veermani/kitchen-backend/pkg/migrate"
	"github.com/veermani/kitchen-backend/pkg/outbox"
	"github.com/veermani/kitchen-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient, redisClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	httpObs := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, svcs, routes.Deps{
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			HTTPObs:  httpObs,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, sessionManager *session.Manager) (routes.Services, error) {
	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		return routes.Services{}, err
	}

	cartStore := cart.NewRedisStore(redisClient)
	storefrontCart, err := cart.NewService(cartStore, catalogSvc, redisClient.CartKey, cfg.Cart.StorefrontTTL)
	if err != nil {
		return routes.Services{}, err
	}
	counterCart, err := cart.NewService(cartStore, catalogSvc, redisClient.CounterCartKey, cfg.Cart.CounterTTL)
	if err != nil {
		return routes.Services{}, err
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	publisher := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	shopStats := metrics.NewShopMetrics(prometheus.DefaultRegisterer)

	ordersSvc, err := orders.NewService(ordersRepo, dbClient, publisher, shopStats)
	if err != nil {
		return routes.Services{}, err
	}

	checkoutSvc, err := checkout.NewService(storefrontCart, ordersRepo, dbClient, publisher, logg, shopStats)
	if err != nil {
		return routes.Services{}, err
	}

	posSvc, err := pos.NewService(counterCart, ordersRepo, dbClient, publisher, logg, shopStats)
	if err != nil {
		return routes.Services{}, err
	}

	paymentsSvc, err := payments.NewService(payments.NewRepository(dbClient.DB()), dbClient, publisher, cfg.Payments.OtherPaymentsLimit)
	if err != nil {
		return routes.Services{}, err
	}

	bulkOrdersSvc, err := bulkorders.NewService(bulkorders.NewRepository(dbClient.DB()), dbClient, publisher)
	if err != nil {
		return routes.Services{}, err
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authSvc,
		Catalog:    catalogSvc,
		Cart:       storefrontCart,
		PosCart:    counterCart,
		Checkout:   checkoutSvc,
		Pos:        posSvc,
		Orders:     ordersSvc,
		Payments:   paymentsSvc,
		BulkOrders: bulkOrdersSvc,
		Invoice:    invoice.NewFormatter(cfg.Store),
	}, nil
}
