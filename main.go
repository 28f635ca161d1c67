package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/subexpiry/audit"
	"github.com/dev-mohitbeniwal/subexpiry/config"
	"github.com/dev-mohitbeniwal/subexpiry/controller"
	"github.com/dev-mohitbeniwal/subexpiry/dao"
	"github.com/dev-mohitbeniwal/subexpiry/db"
	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/metrics"
	"github.com/dev-mohitbeniwal/subexpiry/router"
	"github.com/dev-mohitbeniwal/subexpiry/scheduler"
	"github.com/dev-mohitbeniwal/subexpiry/service"
	"github.com/dev-mohitbeniwal/subexpiry/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize MySQL
	if err := db.InitMySQL(); err != nil {
		logger.Fatal("Failed to initialize MySQL", zap.Error(err))
	}
	defer db.CloseMySQL()

	location, err := time.LoadLocation(cfg.Expiry.Location)
	if err != nil {
		logger.Fatal("Invalid expiry location", zap.String("location", cfg.Expiry.Location), zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	var auditService audit.Service
	if cfg.Elasticsearch.URL != "" {
		auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			logger.Fatal("Failed to initialize audit repository", zap.Error(err))
		}
		auditService = audit.NewService(auditRepository)
		eventBus.Subscribe(util.EventSubscriptionExpired, auditService.HandleExpired)
	} else {
		logger.Info("Elasticsearch URL not set, expiration audit trail disabled")
	}

	// Initialize DAOs
	cacheDAO := dao.NewSubscriptionCacheDAO(db.RedisClient, cfg.Redis.ScanCount)
	subscriberDAO := dao.NewSubscriberDAO(db.MySQL)

	// Deferred expirations fire into the applier once services exist;
	// the queue does not fire before Start.
	var services *service.Services
	delayQueue := scheduler.NewDelayQueue(func(ctx context.Context, id string) {
		services.Applier.Apply(ctx, id)
	}, m)

	// Initialize services
	services = service.InitializeServices(cacheDAO, subscriberDAO, delayQueue, eventBus, m, service.Settings{
		Sentinel:           cfg.Expiry.Sentinel,
		Location:           location,
		RecheckBeforeApply: cfg.Expiry.RecheckBeforeApply,
		ApplyConcurrency:   cfg.Expiry.ApplyConcurrency,
	})
	delayQueue.Start(ctx)

	trigger := scheduler.NewTrigger(services.Expiration, cfg.Expiry.Schedule)
	if err := trigger.Start(ctx); err != nil {
		logger.Fatal("Failed to start expiration trigger", zap.Error(err))
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	controllers := controller.InitializeControllers(services.Expiration, auditService)
	engine := router.SetupRouter(
		controllers,
		cfg.Server.RateLimit,
		cfg.Server.RateBurst,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info(fmt.Sprintf("Worker %d listening on port %s.", os.Getpid(), cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	trigger.Stop()
	delayQueue.Stop()
	cancel()
	eventBus.Wait()

	logger.Info("Server exiting")
}
