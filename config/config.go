package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Redis      RedisConfig
	S3         S3Config
	Clone      CloneConfig
	Metrics    MetricsConfig
	Storefront StorefrontBackendConfig
}

type ServerConfig struct {
	Port          string
	GinMode       string
	Environment   string
	PublicBaseURL string // absolute origin used by injected tracking scripts
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PageTTL  time.Duration
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// Enabled reports whether publishing to S3 is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type CloneConfig struct {
	Timeout         time.Duration
	PreviewMaxBytes int64
	StoreMaxBytes   int64
}

type MetricsConfig struct {
	RetentionDays int
	RetentionCron string
}

// StorefrontBackendConfig holds the client-side document store connection
// parameters embedded into every generated storefront.
type StorefrontBackendConfig struct {
	APIKey           string
	AuthDomain       string
	ProjectID        string
	AppID            string
	SDKURL           string
	OrdersCollection string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			GinMode:       getEnv("GIN_MODE", "debug"),
			Environment:   getEnv("ENVIRONMENT", "development"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "landing_studio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			PageTTL:  parseDuration(getEnv("PAGE_CACHE_TTL", "5m"), 5*time.Minute),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Clone: CloneConfig{
			Timeout:         parseDuration(getEnv("CLONE_TIMEOUT", "15s"), 15*time.Second),
			PreviewMaxBytes: int64(parseInt(getEnv("CLONE_PREVIEW_MAX_BYTES", "2097152"), 2<<20)),
			StoreMaxBytes:   int64(parseInt(getEnv("CLONE_STORE_MAX_BYTES", "1048576"), 1<<20)),
		},
		Metrics: MetricsConfig{
			RetentionDays: parseInt(getEnv("METRICS_RETENTION_DAYS", "180"), 180),
			RetentionCron: getEnv("METRICS_RETENTION_CRON", "0 4 * * *"),
		},
		Storefront: StorefrontBackendConfig{
			APIKey:           getEnv("STOREFRONT_BACKEND_API_KEY", ""),
			AuthDomain:       getEnv("STOREFRONT_BACKEND_AUTH_DOMAIN", ""),
			ProjectID:        getEnv("STOREFRONT_BACKEND_PROJECT_ID", ""),
			AppID:            getEnv("STOREFRONT_BACKEND_APP_ID", ""),
			SDKURL:           getEnv("STOREFRONT_BACKEND_SDK_URL", "https://www.gstatic.com/firebasejs/10.12.2"),
			OrdersCollection: getEnv("STOREFRONT_BACKEND_ORDERS_COLLECTION", "orders"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns host:port for the Redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil || duration <= 0 {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
