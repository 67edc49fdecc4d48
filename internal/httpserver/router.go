package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"namc-portal/internal/domain"
	ordersvc "namc-portal/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fulfillmentService interface {
	ProcessOrder(ctx context.Context, orderID string) (*domain.FulfillmentResult, error)
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
}

type memberRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
}

type loyaltyRepo interface {
	ListByMember(ctx context.Context, memberID string) ([]domain.LoyaltyEntry, error)
}

type accessRepo interface {
	ListByMember(ctx context.Context, memberID string) ([]domain.DigitalAccessGrant, error)
}

type stepRepo interface {
	ListDone(ctx context.Context, orderID string) ([]string, error)
}

// Deps carries everything the routes need.
type Deps struct {
	FulfillmentSvc fulfillmentService
	OrderSvc       orderService
	MemberRepo     memberRepo
	LoyaltyRepo    loyaltyRepo
	AccessRepo     accessRepo
	StepRepo       stepRepo
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.FulfillmentSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: fulfillment and order services are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.POST("/orders", createOrderHandler(deps.OrderSvc))
		api.GET("/orders/:orderID", getOrderHandler(deps.OrderSvc, deps.StepRepo))
		api.POST("/orders/:orderID/fulfillment", fulfillOrderHandler(deps.FulfillmentSvc))
		api.GET("/members/:memberID/loyalty", memberLoyaltyHandler(deps.MemberRepo, deps.LoyaltyRepo))
		api.GET("/members/:memberID/grants", memberGrantsHandler(deps.MemberRepo, deps.AccessRepo))
	}

	return router, nil
}
