package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "image-service/docs"
	"image-service/internal/classifier"
	"image-service/internal/config"
	"image-service/internal/handlers"
	"image-service/internal/metrics"
	"image-service/internal/models"
	"image-service/internal/repository"
	"image-service/internal/services"
	"image-service/internal/services/caches"
	"image-service/internal/storage"
)

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	blobStore := storage.NewBlobStore(minioClient, cfg.MinioBucket, cfg.UploadPrefix)
	classifierClient := classifier.NewClient(cfg.ClassifierBaseURL(), cfg.ClassifyWait)
	featureRepo := repository.NewFeatureRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	pipelineMetrics := metrics.NewMetrics()

	uploadService := services.NewUploadService(blobStore, classifierClient, featureRepo, historyRepo, pipelineMetrics)
	blobService := services.NewBlobService(blobStore, InitBlobCache(cfg), pipelineMetrics)

	app := fiber.New(fiber.Config{BodyLimit: 50 * 1024 * 1024})

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	uploadHandler := handlers.NewUploadHandler(uploadService, pipelineMetrics)
	historyHandler := handlers.NewHistoryHandler(historyRepo)
	blobHandler := handlers.NewBlobHandler(blobService)

	app.Post("/upload", uploadHandler.UploadImage)
	app.Post("/upload/batch", uploadHandler.UploadBatch)
	app.Get("/history", historyHandler.ListHistory)
	app.Get("/uploads/:name", blobHandler.GetBlob)

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Static front-end entry document
	app.Static("/", cfg.FrontendDir)

	port := cfg.AppPort
	log.Printf("Classifier endpoint: %s", cfg.ClassifierBaseURL())
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.ImageFeature{}, &models.HistoryEntry{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}

// InitBlobCache picks a Redis-backed cache when a Redis host is configured
// and falls back to a process-local cache otherwise.
func InitBlobCache(cfg *config.Config) caches.BlobCache {
	if cfg.RedisHost == "" {
		return caches.NewMemoryCache(caches.DefaultTTL)
	}
	redisClient, err := storage.NewRedisClient(cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		log.Printf("Redis unavailable, using in-memory blob cache: %v", err)
		return caches.NewMemoryCache(caches.DefaultTTL)
	}
	return caches.NewRedisCache(redisClient, caches.DefaultTTL)
}
