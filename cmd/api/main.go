package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"namc-portal/internal/config"
	"namc-portal/internal/db"
	"namc-portal/internal/httpserver"
	"namc-portal/internal/lock"
	"namc-portal/internal/printify"
	accessrepo "namc-portal/internal/repository/access"
	fulfillmentsteprepo "namc-portal/internal/repository/fulfillmentstep"
	loyaltyrepo "namc-portal/internal/repository/loyalty"
	memberrepo "namc-portal/internal/repository/member"
	orderrepo "namc-portal/internal/repository/order"
	productrepo "namc-portal/internal/repository/product"
	accesssvc "namc-portal/internal/service/access"
	fulfillmentsvc "namc-portal/internal/service/fulfillment"
	inventorysvc "namc-portal/internal/service/inventory"
	loyaltysvc "namc-portal/internal/service/loyalty"
	ordersvc "namc-portal/internal/service/order"
	"namc-portal/internal/shopify"
	"namc-portal/internal/worker"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := db.Connect(ctx, db.Config{DSN: cfg.DBConnString, MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	memberRepo := memberrepo.NewPostgres(dbpool, logger)
	loyaltyRepo := loyaltyrepo.NewPostgres(dbpool, logger)
	accessRepo := accessrepo.NewPostgres(dbpool, logger)
	stepRepo := fulfillmentsteprepo.NewPostgres(dbpool, logger)

	shopifyClient := shopify.New(cfg.ShopifyBaseURL, cfg.ShopifyToken)
	printifyClient := printify.New(cfg.PrintifyBaseURL, cfg.PrintifyToken)
	orderLocker := lock.NewRedis(cfg.RedisAddr, "namc:fulfillment", 2*time.Minute)

	inventoryService := inventorysvc.New(orderRepo, productRepo, shopifyClient, logger)
	accessService := accesssvc.New(orderRepo, accessRepo, logger)
	loyaltyService := loyaltysvc.New(orderRepo, memberRepo, loyaltyRepo, logger)
	fulfillmentService := fulfillmentsvc.New(orderRepo, stepRepo, shopifyClient, printifyClient,
		inventoryService, accessService, loyaltyService, orderLocker, logger)
	orderService := ordersvc.New(orderRepo, productRepo, memberRepo)

	retryWorker := worker.NewRetryWorker(orderRepo, fulfillmentService,
		cfg.RetryInterval, cfg.RetryGracePeriod, cfg.RetryBatchSize, logger)
	go retryWorker.Start(ctx)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		FulfillmentSvc: fulfillmentService,
		OrderSvc:       orderService,
		MemberRepo:     memberRepo,
		LoyaltyRepo:    loyaltyRepo,
		AccessRepo:     accessRepo,
		StepRepo:       stepRepo,
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
