package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"starbrew/internal/cart"
	"starbrew/internal/cartstore"
	"starbrew/internal/checkout"
	"starbrew/internal/config"
	"starbrew/internal/db"
	"starbrew/internal/httpserver"
	customerrepo "starbrew/internal/repository/customer"
	orderrepo "starbrew/internal/repository/order"
	productrepo "starbrew/internal/repository/product"
	tokenrepo "starbrew/internal/repository/token"
	"starbrew/internal/seed"
	catalogsvc "starbrew/internal/service/catalog"
	identitysvc "starbrew/internal/service/identity"
	rewardssvc "starbrew/internal/service/rewards"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store, err := buildCartStore(cfg, logger)
	if err != nil {
		logger.Fatalf("init cart store: %v", err)
	}
	carts := cart.NewManager(store, logger)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	identityService := identitysvc.New(customerRepo, tokenRepo)
	rewardsService := rewardssvc.New(customerRepo, logger)

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orchestrator := checkout.New(carts, orderRepo, rewardsService, cfg.TaxRateBps, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		Carts:       carts,
		CheckoutSvc: orchestrator,
		IdentitySvc: identityService,
		RewardsSvc:  rewardsService,
		Orders:      orderRepo,
		Categories:  seed.Categories(),
		TaxRateBps:  cfg.TaxRateBps,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func buildCartStore(cfg config.Config, logger *log.Logger) (cartstore.Store, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Printf("cart store: redis %s", cfg.RedisAddr)
		return cartstore.NewRedisStore(client, logger), nil
	}
	logger.Printf("cart store: files under %s", cfg.CartDir)
	return cartstore.NewFileStore(cfg.CartDir, logger)
}
