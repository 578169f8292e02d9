package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/controllers"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/gateway"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/repository"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/routes"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/services"
)

func main() {
	// Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()        // Flushes buffer, if any
	zap.ReplaceGlobals(logger) // Set the global logger

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Initialization ---
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "redis:6379", DB: 0}
	}
	rdb := redis.NewClient(redisOpts)

	// Initialize AWS configuration (LocalStack-compatible) using AWS SDK v2
	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		awsRegion = "us-east-1"
	}
	awsEndpoint := os.Getenv("AWS_ENDPOINT") // e.g. http://localstack:4566
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecret := os.Getenv("AWS_SECRET_ACCESS_KEY")

	cfgOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(awsRegion),
	}
	if awsAccessKey != "" || awsSecret != "" {
		cfgOpts = append(cfgOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecret, ""),
		))
	}
	// Use custom endpoint resolver for LocalStack
	if awsEndpoint != "" {
		cfgOpts = append(cfgOpts, awscfg.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: awsEndpoint, SigningRegion: awsRegion}, nil
			}),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(), cfgOpts...)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if awsEndpoint != "" {
			o.BaseEndpoint = aws.String(awsEndpoint)
		}
	})

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if awsEndpoint != "" {
			o.BaseEndpoint = aws.String(awsEndpoint)
		}
	})
	presignClient := s3.NewPresignClient(s3Client)

	// --- 2. Dependency Injection (Wiring the layers together) ---

	catalogClient := gateway.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPIToken)

	executor := engine.NewExecutor(catalogClient, cfg.Concurrency)
	historyRepo := repository.NewDynamoJobAdapter(ddbClient, cfg.JobsTable)
	archiver := services.NewReportArchiver(s3Client, presignClient, cfg.ReportBucket, cfg.ReportPrefix)
	resolver := services.NewCachedCategoryResolver(rdb, catalogClient)

	bulkEditService := services.NewBulkEditService(catalogClient, executor, resolver, historyRepo, archiver)

	editController := controllers.NewBulkEditController(bulkEditService)
	jobHandler := controllers.NewBulkEditJobHandler(rdb)

	// --- 3. HTTP Server & Middleware ---

	r := gin.New()
	r.Use(gin.Recovery()) // Recover from panics

	// Add request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- 4. Route Registration ---

	routes.RegisterRoutes(r, editController, jobHandler)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Background Worker & Graceful Shutdown ---

	workerCtx, stopWorker := context.WithCancel(context.Background())
	services.StartBulkEditWorker(workerCtx, rdb, bulkEditService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Bulk Edit Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for an interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Bulk Edit Service...")

	stopWorker()

	// Create a context with a timeout to allow for cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Bulk Edit Service stopped gracefully")
}
