package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/config"
	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/handler"
	"github.com/jsnapoli1/zrp-sub006/internal/middleware"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting zrp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Part{},
		&entity.BOMItem{},
		&entity.Inventory{},
		&entity.InventoryTransaction{},
		&entity.Vendor{},
		&entity.PurchaseOrder{},
		&entity.POLine{},
		&entity.WorkOrder{},
		&entity.Quote{},
		&entity.QuoteLine{},
		&entity.PriceHistory{},
		&entity.FirmwareCampaign{},
		&entity.CampaignDevice{},
		&entity.AuditLog{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis, zapLogger)

	repos := repository.NewRepositories(db)
	isAssembly := bom.PrefixPredicate(cfg.BOM.AssemblyPrefixes...)
	services := service.NewServices(repos, rdb, zapLogger, isAssembly, cfg.Campaign.PollInterval)
	handlers := handler.NewHandlers(services)

	resumeCampaignPollers(services, zapLogger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})

	api := router.Group("/api/v1", middleware.JWTAuth(cfg.JWT.Secret))
	handlers.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	services.Pollers.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// resumeCampaignPollers restarts progress polling for campaigns that were
// running when the process last stopped.
func resumeCampaignPollers(services *service.Services, zapLogger *zap.Logger) {
	ctx := context.Background()
	running, err := services.Campaign.List(ctx, entity.CampaignStatusRunning)
	if err != nil {
		zapLogger.Warn("Failed to list running campaigns", zap.Error(err))
		return
	}
	for _, c := range running {
		services.Pollers.Ensure(ctx, c.ID)
	}
	if len(running) > 0 {
		zapLogger.Info("Resumed campaign pollers", zap.Int("count", len(running)))
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// initRedis connects the cost cache. A missing redis is not fatal; cost
// lookups just skip the cache.
func initRedis(cfg config.RedisConfig, zapLogger *zap.Logger) *redis.Client {
	if cfg.Host == "" {
		zapLogger.Info("Redis not configured, cost cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unreachable, cost cache disabled", zap.Error(err))
		return nil
	}
	return rdb
}
