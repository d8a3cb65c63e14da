// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"essentia/internal/core/types"
	"essentia/internal/domain/allocation"
	"essentia/internal/domain/bottling"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/domain/pricing"
	"essentia/internal/infrastructure/http/v1/handlers"
	"essentia/internal/infrastructure/http/v1/middleware"
	"essentia/internal/infrastructure/storage/postgres"
	"essentia/internal/infrastructure/storage/postgres/bottling_repo"
	"essentia/internal/infrastructure/storage/postgres/catalog_repo"
	"essentia/pkg/config"
	"essentia/pkg/logger"
	"essentia/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Bottling holds the conversion engine settings
	Bottling config.BottlingConfig

	// Version is reported by the info endpoint
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Actor())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(v1, cfg)
		registerBottlingRoutes(v1, cfg)
		registerAllocationRoutes(v1, cfg)
	}

	return router
}

// newPricingResolver builds the price table from configuration.
func newPricingResolver(cfg config.BottlingConfig) *pricing.Resolver {
	sizes := make([]types.Volume, len(cfg.Sizes))
	for i, s := range cfg.Sizes {
		sizes[i] = types.Volume(s)
	}
	table := pricing.NewTable(sizes,
		decimal.NewFromFloat(cfg.StandardRate),
		decimal.NewFromFloat(cfg.SelectiveRate))
	return pricing.NewResolver(table, cfg.SelectiveMarker)
}

// registerCatalogRoutes registers catalog CRUD endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	// --- BULK LOTS ---
	{
		repo := catalog_repo.NewLotRepo(txm)
		service := lot.NewService(repo, txm)
		handler := handlers.NewLotHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/lots"), handler)
	}

	// --- BOTTLE SIZES ---
	{
		repo := catalog_repo.NewBottleSizeRepo(txm)
		service := bottlesize.NewService(repo, txm)
		handler := handlers.NewBottleSizeHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/bottle-sizes"), handler)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(txm)
		service := product.NewService(repo, txm)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- SHOPS ---
	{
		repo := catalog_repo.NewShopRepo(txm)
		service := shop.NewService(repo, txm)
		handler := handlers.NewShopHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/shops"), handler)
	}
}

// registerBottlingRoutes registers conversion engine endpoints.
func registerBottlingRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	lotRepo := catalog_repo.NewLotRepo(txm)
	sizeRepo := catalog_repo.NewBottleSizeRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	shopRepo := catalog_repo.NewShopRepo(txm)
	allocRepo := bottling_repo.NewAllocationRepo(txm)
	recordRepo := bottling_repo.NewRecordRepo(txm)

	pricingResolver := newPricingResolver(cfg.Bottling)
	numbers := numerator.New(postgres.NewNumeratorQuerier(txm))

	coordinator := bottling.NewCoordinator(bottling.CoordinatorDeps{
		Lots:        lotRepo,
		Components:  sizeRepo,
		Products:    productRepo,
		Resolver:    product.NewResolver(productRepo, cfg.Bottling.SKUPrefixLen),
		Shops:       shopRepo,
		Allocations: allocRepo,
		Records:     recordRepo,
		Pricing:     pricingResolver,
		Numbers:     numbers,
		TxManager:   txm,
	})
	runner := bottling.NewRunner(coordinator, lotRepo, shopRepo, pricingResolver,
		types.Volume(cfg.Bottling.MinBatchVolumeML))
	reconciler := bottling.NewReconciler(lotRepo, sizeRepo, productRepo, allocRepo, txm)

	handler := handlers.NewBottlingHandler(baseHandler, coordinator, runner, reconciler)

	group := rg.Group("/bottling")
	{
		group.POST("/bottle", handler.Bottle)
		group.POST("/bottle-all-sizes", handler.BottleAllSizes)
		group.POST("/bottle-all-bulk", handler.BottleAllBulk)
		group.POST("/return-shop-inventory", handler.ReturnShopInventory)
		group.GET("/records", handler.ListRecords)
	}
}

// registerAllocationRoutes registers bulk shop inventory endpoints.
func registerAllocationRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	allocRepo := bottling_repo.NewAllocationRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	shopRepo := catalog_repo.NewShopRepo(txm)
	service := allocation.NewService(allocRepo, productRepo, shopRepo, txm)

	handler := handlers.NewAllocationHandler(baseHandler, service)

	products := rg.Group("/products")
	{
		products.POST("/assign-all-to-shop", handler.AssignAllToShop)
		products.POST("/unassign-all-from-shop", handler.UnassignAllFromShop)
	}
	rg.GET("/shops/:id/inventory", handler.ListByShop)
}
