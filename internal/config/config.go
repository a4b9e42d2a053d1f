package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Mail      MailConfig
	Exports   ExportsConfig
	Cache     CacheConfig
	Cron      CronConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret string
}

type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type ExportsConfig struct {
	Dir string
}

type CacheConfig struct {
	TTL time.Duration
}

type CronConfig struct {
	DailySpec   string
	MonthlySpec string
}

type RateLimitConfig struct {
	BookingLimit  int
	BookingWindow time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverPort, err := strconv.Atoi(getenv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host:    getenv("SERVER_HOST", "localhost"),
		Port:    serverPort,
		BaseURL: getenv("BASE_URL", fmt.Sprintf("http://localhost:%d", serverPort)),
	}

	postgresPort, err := strconv.Atoi(getenv("POSTGRES_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     getenv("POSTGRES_HOST", "localhost"),
		Port:     postgresPort,
		SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     getenv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}

	cacheTTL, err := time.ParseDuration(getenv("CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid CACHE_TTL: %w", op, err)
	}

	bookingLimit, err := strconv.Atoi(getenv("BOOKING_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid BOOKING_RATE_LIMIT: %w", op, err)
	}

	bookingWindow, err := time.ParseDuration(getenv("BOOKING_RATE_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid BOOKING_RATE_WINDOW: %w", op, err)
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Auth:     AuthConfig{JWTSecret: jwtSecret},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      getenv("MAIL_FROM_EMAIL", "noreply@parkgo.local"),
			FromName:       getenv("MAIL_FROM_NAME", "ParkGo Team"),
		},
		Exports: ExportsConfig{Dir: getenv("EXPORTS_DIR", "exports")},
		Cache:   CacheConfig{TTL: cacheTTL},
		Cron: CronConfig{
			// Evening reminder and first-of-month report, server-local time.
			DailySpec:   getenv("CRON_DAILY", "0 18 * * *"),
			MonthlySpec: getenv("CRON_MONTHLY", "0 8 1 * *"),
		},
		RateLimit: RateLimitConfig{
			BookingLimit:  bookingLimit,
			BookingWindow: bookingWindow,
		},
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
