package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/food-ordering/utils"
)

const devJWTSecret = "dev-only-food-ordering-secret"

// Config holds the application configuration
type Config struct {
	AppPort string
	IsProd  bool

	DBDriver string // sqlite, mysql or postgres
	DBSource string

	JWTSecret         string
	SessionTTL        time.Duration
	SessionCookieName string
	CORSOrigin        string
	AllowAdminSignup  bool

	RedisAddr    string
	RedisPass    string
	RedisDB      int
	MenuCacheTTL time.Duration

	AMQPURL      string
	AMQPExchange string

	SeedSampleData bool

	RateLimitRPS        float64
	RateLimitBurst      int
	AuthRateLimitPerMin int

	LogLevel  string
	LogFormat string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug("no .env file loaded")
	}

	cfg := &Config{
		AppPort:             getEnv("PORT", "8080"),
		IsProd:              getEnv("GIN_MODE", "debug") == "release",
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:            getEnv("DB_SOURCE", "food_ordering.db"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "food_session"),
		CORSOrigin:          getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AllowAdminSignup:    getEnvBool("ALLOW_ADMIN_SIGNUP", false),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPass:           getEnv("REDIS_PASS", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		MenuCacheTTL:        getEnvDuration("MENU_CACHE_TTL", time.Minute),
		AMQPURL:             getEnv("AMQP_URL", ""),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "food_ordering_events"),
		SeedSampleData:      getEnvBool("SEED_SAMPLE_DATA", true),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 40),
		AuthRateLimitPerMin: getEnvInt("AUTH_RATE_LIMIT_PER_MIN", 10),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}

	if cfg.JWTSecret == "" {
		utils.ErrorLogger.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		utils.ErrorLogger.Warnf("invalid boolean for %s, using %v", key, fallback)
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		utils.ErrorLogger.Warnf("invalid integer for %s, using %d", key, fallback)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		utils.ErrorLogger.Warnf("invalid duration for %s, using %s", key, fallback)
		return fallback
	}
	return d
}
