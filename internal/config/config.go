package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort        string
	DatabaseURL    string
	ClassifierHost string
	ClassifierPort string
	ClassifyWait   time.Duration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool
	RedisHost      string
	RedisPort      string
	FrontendDir    string
	UploadPrefix   string
}

const (
	defaultPort           = "8080"
	defaultClassifierHost = "localhost"
	defaultClassifierPort = "5000"
	defaultClassifyWait   = 30 * time.Second

	// MaxDBConns bounds simultaneous database connections; waiting
	// callers queue rather than being rejected.
	MaxDBConns = 10
)

// LoadConfig loads configuration from environment variables. A local .env
// file is merged in first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	minioSSL := false
	if sslEnv := os.Getenv("MINIO_SSL"); sslEnv != "" {
		val, err := strconv.ParseBool(sslEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_SSL value: %v", err)
		}
		minioSSL = val
	}
	classifyWait := defaultClassifyWait
	if waitEnv := os.Getenv("CLASSIFY_TIMEOUT_SECONDS"); waitEnv != "" {
		val, err := strconv.Atoi(waitEnv)
		if err == nil && val > 0 {
			classifyWait = time.Duration(val) * time.Second
		}
	}
	cfg := &Config{
		AppPort:        getEnv("PORT", defaultPort),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ClassifierHost: getEnv("CLASSIFIER_HOST", defaultClassifierHost),
		ClassifierPort: getEnv("CLASSIFIER_PORT", defaultClassifierPort),
		ClassifyWait:   classifyWait,
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    os.Getenv("MINIO_BUCKET"),
		MinioSSL:       minioSSL,
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		FrontendDir:    getEnv("FRONTEND_DIR", "./frontend"),
		UploadPrefix:   getEnv("UPLOAD_PATH_PREFIX", "/uploads"),
	}
	// Basic validation for required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database configuration is incomplete: DATABASE_URL is required")
	}
	if cfg.MinioEndpoint == "" || cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
		return nil, fmt.Errorf("minio configuration is incomplete")
	}
	return cfg, nil
}

// ClassifierBaseURL assembles the base URL of the classification service.
func (c *Config) ClassifierBaseURL() string {
	return fmt.Sprintf("http://%s:%s", c.ClassifierHost, c.ClassifierPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL
// with a bounded connection pool.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(MaxDBConns)
	sqlDB.SetMaxIdleConns(MaxDBConns / 2)
	return db, nil
}
