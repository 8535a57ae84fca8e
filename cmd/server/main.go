package main

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler,../../internal/application -o ../../docs --v3.1

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/infrastructure/cache"
	"github.com/erp/tradecore/internal/infrastructure/config"
	"github.com/erp/tradecore/internal/infrastructure/event"
	"github.com/erp/tradecore/internal/infrastructure/logger"
	"github.com/erp/tradecore/internal/infrastructure/persistence"
	"github.com/erp/tradecore/internal/infrastructure/telemetry"
	"github.com/erp/tradecore/internal/interfaces/http/handler"
	"github.com/erp/tradecore/internal/interfaces/http/middleware"
	"github.com/erp/tradecore/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/tradecore/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Tradecore API
//	@version		1.0
//	@description	Catalog pricing, stock-aware orders and purchases, and account ledgers.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	// Telemetry providers are no-ops when telemetry is disabled
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Tee(log)

	log.Info("Starting tradecore",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.Bool("tracing", tp.IsEnabled()),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	meter := mp.Meter("tradecore")
	poolMetrics, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
	if err != nil {
		log.Fatal("Failed to register database pool metrics", zap.Error(err))
	}
	defer func() {
		_ = poolMetrics.Unregister()
	}()
	businessMetrics, err := telemetry.NewBusinessMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	taxRuleRepo := persistence.NewGormTaxRuleRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB, cfg.Trade.InvoiceStartNumber)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	accountRepo := persistence.NewGormLedgerAccountRepository(db.DB)
	ledgerTxRepo := persistence.NewGormLedgerTransactionRepository(db.DB)

	tradeScope := persistence.NewTradeTransactionScope(db.DB, cfg.Trade.InvoiceStartNumber)
	ledgerScope := persistence.NewLedgerTransactionScope(db.DB)

	// Idempotency store shared by event handlers and the HTTP layer
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewIdempotentHandler(
		event.NewAuditLogHandler(log),
		idempotencyStore,
		shared.IdempotencyConfig{TTL: cfg.Redis.IdempotencyTTL, Enabled: true},
		log,
	)
	eventBus.Subscribe(auditHandler)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	resolver := strategy.NewPriceResolver()
	clock := shared.SystemClock{}

	productService := catalogapp.NewProductService(productRepo, taxRuleRepo, stockRepo, resolver, clock, log)
	productService.SetEventPublisher(eventBus)
	taxRuleService := catalogapp.NewTaxRuleService(taxRuleRepo, log)

	orderService := tradeapp.NewOrderService(orderRepo, invoiceRepo, tradeScope, resolver, clock,
		tradeapp.OrderServiceConfig{SettledPaymentMethod: cfg.Trade.SettledPaymentMethod}, log)
	orderService.SetEventPublisher(eventBus)
	orderService.SetMetrics(businessMetrics)

	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, tradeScope, clock, log)
	purchaseService.SetEventPublisher(eventBus)
	purchaseService.SetMetrics(businessMetrics)

	ledgerService := ledgerapp.NewService(accountRepo, ledgerTxRepo, ledgerScope, clock, log)
	ledgerService.SetEventPublisher(eventBus)
	ledgerService.SetMetrics(businessMetrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.TraceAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	healthHandler := handler.NewHealthHandler(db, version)
	engine.GET("/health", healthHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	groups := router.RegisterAPI(r, router.Handlers{
		Product:  handler.NewProductHandler(productService),
		TaxRule:  handler.NewTaxRuleHandler(taxRuleService),
		Order:    handler.NewOrderHandler(orderService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Ledger:   handler.NewLedgerHandler(ledgerService),
	}, middleware.Idempotency(idempotencyStore, cfg.Redis.IdempotencyTTL, log))
	r.Setup()
	for _, g := range groups {
		log.Debug("Routes registered", zap.String("group", g.Name()), zap.String("prefix", g.Prefix()), zap.Int("routes", len(g.Routes())))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	// Flush telemetry last so shutdown spans and logs are exported
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited")
}
